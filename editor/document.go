// Package editor keeps an incipit being edited in both of its forms, PAE
// text and an event list. Only the form changed last is authoritative; the
// other one is rebuilt from it the next time it is asked for.
package editor

import (
	"strings"

	"github.com/jsphweid/incipitdex/key"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
)

type Authority int

const (
	StructureAuthority Authority = iota
	TextAuthority
)

type Document struct {
	header model.Header
	events []model.Event
	body   string

	eventsStale bool
	bodyStale   bool
	skipped     []string
}

func NewDocument() *Document {
	return &Document{header: model.DefaultHeader}
}

// FromPAE starts a document from a full PAE string, header included.
func FromPAE(s string) *Document {
	d := NewDocument()
	d.SetPAE(s)
	return d
}

func (d *Document) Authority() Authority {
	if d.eventsStale {
		return TextAuthority
	}
	return StructureAuthority
}

func (d *Document) Header() model.Header {
	return d.header
}

func (d *Document) SetClef(c model.Clef) {
	if c.Valid() {
		d.header.Clef = c
	}
}

func (d *Document) SetKey(n int) {
	d.header.Key = key.Clamp(n)
}

func (d *Document) SetTime(ts model.TimeSignature) {
	d.header.Time = ts
}

func (d *Document) refreshEvents() {
	if d.eventsStale {
		d.events, d.skipped = pae.DecodeBodyReport(d.body)
		d.eventsStale = false
	}
}

func (d *Document) structureChanged() {
	d.bodyStale = true
	d.skipped = nil
}

func (d *Document) Append(evs ...model.Event) {
	d.refreshEvents()
	d.events = append(d.events, evs...)
	d.structureChanged()
}

// Undo drops the last event and reports whether there was one.
func (d *Document) Undo() bool {
	d.refreshEvents()
	if len(d.events) == 0 {
		return false
	}
	d.events = d.events[:len(d.events)-1]
	d.structureChanged()
	return true
}

func (d *Document) Clear() {
	d.events = nil
	d.body = ""
	d.eventsStale = false
	d.bodyStale = false
	d.skipped = nil
}

// SetBody replaces the body text; the event list is stale until read.
func (d *Document) SetBody(body string) {
	d.body = strings.Join(strings.Fields(body), " ")
	d.eventsStale = true
	d.bodyStale = false
}

// SetPAE replaces header and body from a full PAE string.
func (d *Document) SetPAE(s string) {
	h, body := pae.SplitHeader(strings.Join(strings.Fields(s), " "))
	d.header = h
	d.SetBody(body)
}

func (d *Document) Events() []model.Event {
	d.refreshEvents()
	return append([]model.Event(nil), d.events...)
}

func (d *Document) Len() int {
	d.refreshEvents()
	return len(d.events)
}

// Skipped lists tokens the last text edit contained but could not decode.
func (d *Document) Skipped() []string {
	d.refreshEvents()
	return d.skipped
}

func (d *Document) Body() string {
	if d.bodyStale {
		d.body = pae.EncodeBody(d.events)
		d.bodyStale = false
	}
	return d.body
}

func (d *Document) PAE() string {
	return strings.TrimSpace(pae.FormatHeader(d.header) + " " + d.Body())
}

func (d *Document) Incipit() model.Incipit {
	return model.Incipit{Header: d.header, Events: d.Events()}
}
