// cache.go - Implement the Cache object.
// Copyright (C) 2020  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package cache stores token lists on disk, so that unchanged
// documents need not be tokenized again.
package cache

import (
	"encoding/base64"
	"encoding/gob"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/seehuhn/mathtok/latex/tokenizer"
)

const (
	fileExt = ".tok"
	tmpExt  = ".tmp"
)

// formatVersion is mixed into every cache key.  It must be changed
// whenever the tokenizer output for a given input changes, so that
// stale token lists are not reused.
var formatVersion = "mathtok-tokens-2"

var cacheDir = flag.String("cache-dir", "",
	"cache directory for token lists")

// Cache provides a facility to store token lists on disk for later
// retrival.  The methods of a Cache can be used concurrently.
type Cache struct {
	cacheDir string
	start    time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// NewCache creates a new cache, backed by subdirectory 'subdir'
// inside the cache directory.  The cache is pre-populated with any
// token lists found in this directory.
func NewCache(subdir string) (*Cache, error) {
	baseDir := *cacheDir
	if len(baseDir) == 0 {
		baseDir = os.Getenv("MATHTOK_CACHE")
	}
	if len(baseDir) == 0 {
		userDir, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(userDir, "de.seehuhn.mathtok")
	}
	return openCache(filepath.Join(baseDir, subdir))
}

func openCache(dirName string) (*Cache, error) {
	c := &Cache{
		cacheDir: dirName,
		entries:  make(map[string]*entry),
		start:    time.Now(),
	}
	err := os.MkdirAll(c.cacheDir, 0755)
	if err != nil {
		return nil, err
	}

	files, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, de := range files {
		name := de.Name()
		if !de.IsDir() && strings.HasSuffix(name, tmpExt) {
			// left behind by an interrupted Put
			_ = os.Remove(filepath.Join(c.cacheDir, name))
			continue
		}
		if de.IsDir() || !strings.HasSuffix(name, fileExt) {
			log.Printf("cache %s: unexpected file %q", c.cacheDir, name)
			continue
		}
		fi, err := de.Info()
		if err != nil {
			return nil, err
		}
		hash := strings.TrimSuffix(name, fileExt)
		e := &entry{
			Size: fi.Size(),
			Time: fi.ModTime(),
		}
		c.entries[hash] = e
		total += e.Size
	}
	log.Printf("cache %s: %s (%d objects)",
		c.cacheDir, byteSize(total), len(c.entries))

	return c, nil
}

// Close must be called when the cache is no longer needed.  Up to
// 'pruneLimit' bytes of token lists may be left behind in the cache
// directory; these files will be used to pre-populate future Cache
// instances.
//
// If pruneLimit >= 0, token lists added using the current Cache
// instance will always be retained, even if their total size exceeds
// pruneLimit.  If pruneLimit < 0, all cached data is removed.
func (c *Cache) Close(pruneLimit int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var of oldestFirst
	var total int64
	for hash, e := range c.entries {
		of = append(of, pruneEntry{key: hash, entry: e})
		total += e.Size
	}
	sort.Sort(of)

	var err error
	var pruneCount int
	var pruneBytes int64
	for _, pe := range of {
		if total <= pruneLimit {
			break
		}
		if pruneLimit >= 0 && c.start.Before(pe.Time) {
			break
		}
		e2 := os.Remove(c.filePath(pe.key))
		if err == nil {
			err = e2
		}
		pruneCount++
		pruneBytes += pe.Size
		total -= pe.Size
	}
	if pruneCount > 0 {
		log.Printf("cache %s: removed %s (%d objects)",
			c.cacheDir, byteSize(pruneBytes), pruneCount)
	}

	if pruneLimit < 0 {
		_ = os.Remove(c.cacheDir)
	}

	c.entries = nil
	return err
}

// Has returns true, if the cache contains a token list which has
// previously been stored for the given document content.  The token
// list can be retrieved using the .Get() method.
func (c *Cache) Has(content string) bool {
	hash := hashKey(content)

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[hash]
	if ok {
		entry.Time = time.Now()
	}
	return ok
}

// Put stores the tokens of a document in the cache.  Any preexisting
// token list for the same content is overwritten.  The data is
// written to a temporary file first, so that concurrent readers never
// see a partially written token list.
func (c *Cache) Put(content string, toks tokenizer.TokenList) (err error) {
	hash := hashKey(content)
	w, err := os.CreateTemp(c.cacheDir, hash+".*"+tmpExt)
	if err != nil {
		return err
	}
	tmpName := w.Name()
	defer func() {
		if err != nil {
			w.Close()
			os.Remove(tmpName)
		}
	}()

	err = gob.NewEncoder(w).Encode(toks)
	if err != nil {
		return err
	}
	fi, err := w.Stat()
	if err != nil {
		return err
	}
	err = w.Close()
	if err != nil {
		return err
	}
	err = os.Rename(tmpName, c.filePath(hash))
	if err != nil {
		return err
	}

	e := &entry{
		Size: fi.Size(),
		Time: time.Now(),
	}
	c.mu.Lock()
	c.entries[hash] = e
	c.mu.Unlock()
	return nil
}

// Get returns the token list which has previously been stored in the
// cache for the given document content.
func (c *Cache) Get(content string) (tokenizer.TokenList, error) {
	hash := hashKey(content)
	path := c.filePath(hash)
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var toks tokenizer.TokenList
	err = gob.NewDecoder(in).Decode(&toks)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if e := c.entries[hash]; e != nil {
		e.Time = time.Now()
	}
	c.mu.Unlock()
	return toks, nil
}

func (c *Cache) filePath(hash string) string {
	return filepath.Join(c.cacheDir, hash+fileExt)
}

func hashKey(key string) string {
	h := sha3.NewShake128()
	h.Write([]byte(formatVersion))
	h.Write([]byte{0})
	h.Write([]byte(key))
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

type entry struct {
	Size int64
	Time time.Time
}

type pruneEntry struct {
	key string
	*entry
}

type oldestFirst []pruneEntry

func (of oldestFirst) Len() int { return len(of) }
func (of oldestFirst) Less(i, j int) bool {
	return of[i].Time.Before(of[j].Time)
}
func (of oldestFirst) Swap(i, j int) { of[i], of[j] = of[j], of[i] }
