/*
 * Copyright (c) 2021 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package profiler

import (
	"sort"
	"sync"
	"time"

	"github.com/poolpOrg/toyrsa/logging"
)

type Profiler struct {
	muProfiler sync.Mutex

	eventDurations    map[string]time.Duration
	eventDurationsMin map[string]time.Duration
	eventDurationsMax map[string]time.Duration

	eventCounts map[string]uint64
}

type Stats struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return time.Duration(uint64(s.Total) / s.Count)
}

func New() *Profiler {
	return &Profiler{
		eventDurations:    make(map[string]time.Duration),
		eventDurationsMin: make(map[string]time.Duration),
		eventDurationsMax: make(map[string]time.Duration),
		eventCounts:       make(map[string]uint64),
	}
}

func (p *Profiler) RecordEvent(event string, duration time.Duration) {
	p.muProfiler.Lock()
	defer p.muProfiler.Unlock()

	if _, exists := p.eventCounts[event]; !exists {
		p.eventDurations[event] = 0
		p.eventDurationsMin[event] = duration
		p.eventDurationsMax[event] = duration
		p.eventCounts[event] = 0
	}

	p.eventDurations[event] += duration
	if duration < p.eventDurationsMin[event] {
		p.eventDurationsMin[event] = duration
	}
	if duration > p.eventDurationsMax[event] {
		p.eventDurationsMax[event] = duration
	}
	p.eventCounts[event] += 1
}

// Track starts timing event, the returned function records it:
//
//	defer ctx.Profiler().Track("encode")()
func (p *Profiler) Track(event string) func() {
	t0 := time.Now()
	return func() {
		p.RecordEvent(event, time.Since(t0))
	}
}

func (p *Profiler) Stats(event string) (Stats, bool) {
	p.muProfiler.Lock()
	defer p.muProfiler.Unlock()

	count, exists := p.eventCounts[event]
	if !exists {
		return Stats{}, false
	}
	return Stats{
		Count: count,
		Min:   p.eventDurationsMin[event],
		Max:   p.eventDurationsMax[event],
		Total: p.eventDurations[event],
	}, true
}

func (p *Profiler) Events() []string {
	p.muProfiler.Lock()
	defer p.muProfiler.Unlock()

	events := make([]string, 0, len(p.eventCounts))
	for event := range p.eventCounts {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

func (p *Profiler) Display(logger *logging.Logger) {
	for _, event := range p.Events() {
		stats, _ := p.Stats(event)
		logger.Profile("%s: calls=%d, min=%s, avg=%s, max=%s, total=%s",
			event, stats.Count, stats.Min, stats.Average(), stats.Max, stats.Total)
	}
}
