// Package directory reads the user directory document that maps numeric
// user ids to display names and avatar images.
package directory

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	// ErrDataSource is returned when the directory document cannot be read.
	ErrDataSource = errors.New("user directory unavailable")
	// ErrUserNotFound is returned by Lookup for ids absent from the directory.
	ErrUserNotFound = errors.New("user not in directory")
)

// Entry is one user as listed in the directory.
type Entry struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type document struct {
	Server struct {
		Host     string `xml:"host"`
		Protocol string `xml:"protocol"`
		Port     string `xml:"port"`
	} `xml:"server"`
	Users []struct {
		ID     string `xml:"id,attr"`
		Name   string `xml:"name"`
		Avatar string `xml:"avatar"`
	} `xml:"users>user"`
}

// LoadFile parses the directory document at path.
func LoadFile(path string) (map[int]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a directory document. Avatar paths are resolved against the
// document's server node as protocol://host:port/path.
func Parse(r io.Reader) (map[int]Entry, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDataSource, err)
	}
	base := fmt.Sprintf("%s://%s:%s",
		strings.TrimSpace(doc.Server.Protocol),
		strings.TrimSpace(doc.Server.Host),
		strings.TrimSpace(doc.Server.Port))

	entries := make(map[int]Entry, len(doc.Users))
	for _, u := range doc.Users {
		id, err := strconv.Atoi(strings.TrimSpace(u.ID))
		if err != nil {
			return nil, fmt.Errorf("%w: user id %q: %v", ErrDataSource, u.ID, err)
		}
		entries[id] = Entry{
			ID:    id,
			Name:  strings.TrimSpace(u.Name),
			Image: base + strings.TrimSpace(u.Avatar),
		}
	}
	return entries, nil
}

// Lookup returns the entry for id.
func Lookup(entries map[int]Entry, id int) (Entry, error) {
	e, ok := entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	return e, nil
}

// Merge returns the directory entries whose id appears in ids.
func Merge(entries map[int]Entry, ids []int) map[int]Entry {
	out := make(map[int]Entry, len(ids))
	for _, id := range ids {
		if e, ok := entries[id]; ok {
			out[id] = e
		}
	}
	return out
}

// Collator compares two strings, returning -1, 0 or 1.
type Collator interface {
	CompareString(a, b string) int
}

// NewCollator returns a collator for a BCP 47 language tag such as "pl".
// The result is safe for concurrent use.
func NewCollator(tag string) (Collator, error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("collation locale %q: %w", tag, err)
	}
	return &lockedCollator{c: collate.New(lang)}, nil
}

// collate.Collator keeps scratch buffers between calls.
type lockedCollator struct {
	mu sync.Mutex
	c  *collate.Collator
}

func (l *lockedCollator) CompareString(a, b string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.CompareString(a, b)
}

// Sort lists entries ordered by name under c, breaking ties by id.
func Sort(entries map[int]Entry, c Collator) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if n := c.CompareString(out[i].Name, out[j].Name); n != 0 {
			return n < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
