// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"presence/internal/attendance"
)

// SampleCSV is a small dataset with two users. User 10 has one entry on each
// of Tuesday, Wednesday and Thursday of the second week of September 2013.
const SampleCSV = `user_id,date,start,end
10,2013-09-10,09:39:05,17:59:52
10,2013-09-11,09:19:52,16:07:37
10,2013-09-12,10:48:46,17:23:51
11,2013-09-09,09:00:00,17:30:00
11,2013-09-10,08:30:00,16:45:00
11,2013-10-01,09:15:00,17:00:00
total,6
`

// SampleXML is a directory document describing users 10 and 11 plus one
// user without attendance data.
const SampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<intranet>
  <server>
    <host>intranet.example.com</host>
    <protocol>https</protocol>
    <port>443</port>
  </server>
  <users>
    <user id="10">
      <avatar>/api/images/users/10</avatar>
      <name>Żaneta K.</name>
    </user>
    <user id="11">
      <avatar>/api/images/users/11</avatar>
      <name>Adam P.</name>
    </user>
    <user id="99">
      <avatar>/api/images/users/99</avatar>
      <name>Zenon W.</name>
    </user>
  </users>
</intranet>
`

// User10 returns the entries of user 10 from SampleCSV.
func User10() attendance.Days {
	return attendance.Days{
		{Year: 2013, Month: 9, Day: 10}: {Start: attendance.Clock(9, 39, 5), End: attendance.Clock(17, 59, 52)},
		{Year: 2013, Month: 9, Day: 11}: {Start: attendance.Clock(9, 19, 52), End: attendance.Clock(16, 7, 37)},
		{Year: 2013, Month: 9, Day: 12}: {Start: attendance.Clock(10, 48, 46), End: attendance.Clock(17, 23, 51)},
	}
}

// WriteFile writes content to name inside a per-test temp dir and returns
// the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
