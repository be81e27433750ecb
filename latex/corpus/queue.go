// queue.go - load and tokenize documents concurrently
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

package corpus

import (
	"log"
	"sync"

	"github.com/seehuhn/mathtok/latex/cache"
	"github.com/seehuhn/mathtok/latex/document"
)

const queueLength = 1

// Queue allows to load and tokenize documents in parallel.
type Queue struct {
	baseDir string
	cache   *cache.Cache

	jobs          chan *jobSpec
	workers       *sync.WaitGroup
	schedulerDone chan struct{}
}

// NewQueue creates a new queue for tokenizing documents.  Document
// paths are interpreted relative to baseDir.  At most maxWorkers
// documents are processed at the same time.  If c is not nil, token
// lists are taken from and stored in this cache.
func NewQueue(baseDir string, maxWorkers int, c *cache.Cache) *Queue {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	q := &Queue{
		baseDir:       baseDir,
		cache:         c,
		jobs:          make(chan *jobSpec, queueLength),
		workers:       &sync.WaitGroup{},
		schedulerDone: make(chan struct{}),
	}
	go q.scheduler(maxWorkers)
	return q
}

// Finish must be called after the last job has been submitted to the
// queue.  The function waits until all jobs have completed and then
// shuts down the queue.
func (q *Queue) Finish() {
	close(q.jobs)
	<-q.schedulerDone
	q.workers.Wait()
	q.jobs = nil
}

func (q *Queue) scheduler(maxWorkers int) {
	defer close(q.schedulerDone)

	workers := make(chan int, maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		workers <- i
	}

	for job := range q.jobs {
		worker := <-workers
		q.workers.Add(1)
		go func(job *jobSpec) {
			job.Result <- q.process(job.Entry)
			close(job.Result)
			workers <- worker
			q.workers.Done()
		}(job)
	}
}

// Submit adds a new document to the queue.  The result can be read
// from the channel returned by .Submit().
func (q *Queue) Submit(e Entry) <-chan *Result {
	c := make(chan *Result, 1)
	q.jobs <- &jobSpec{
		Entry:  e,
		Result: c,
	}
	return c
}

type jobSpec struct {
	Entry  Entry
	Result chan<- *Result
}

func (q *Queue) process(e Entry) *Result {
	res := &Result{Entry: e}

	doc, err := document.Open(e.Path(q.baseDir))
	if err != nil {
		res.Err = err
		return res
	}

	if q.cache != nil && q.cache.Has(doc.Content) {
		toks, err := q.cache.Get(doc.Content)
		if err == nil {
			res.Tokens = toks
			res.Cached = true
			return res
		}
		log.Println("reading cached tokens for", e, "failed:", err)
	}

	res.Tokens, res.Err = doc.Tokenize()
	if res.Err == nil && q.cache != nil {
		err = q.cache.Put(doc.Content, res.Tokens)
		if err != nil {
			log.Println("caching tokens for", e, "failed:", err)
		}
	}
	return res
}

// Run tokenizes all given documents, using up to maxWorkers
// goroutines.  The results are returned in the order of the entries.
func Run(baseDir string, entries []Entry, maxWorkers int, c *cache.Cache) []*Result {
	q := NewQueue(baseDir, maxWorkers, c)

	chans := make([]<-chan *Result, len(entries))
	for i, e := range entries {
		chans[i] = q.Submit(e)
	}
	q.Finish()

	res := make([]*Result, len(entries))
	for i, rc := range chans {
		res[i] = <-rc
	}
	return res
}
