package annotation

import (
	"fmt"
)

// NoLevel marks a tag that does not belong to a B-tree page.
const NoLevel = -1

// Tag is one annotated byte range over the whole file. End is inclusive.
type Tag struct {
	ID         uint32
	Start      uint64
	End        uint64
	Text       string
	FontColour Color
	NoteColour Color
}

// Sink receives tags in emission order.
type Sink interface {
	WriteTag(tag Tag) error
}

// Emitter is the single place tag ids are assigned. It does not check the
// ordering of offsets; decoders are responsible for emitting in byte order.
type Emitter struct {
	next uint32
	sink Sink
}

func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit appends one tag with the next id.
func (e *Emitter) Emit(text string, color Color, start, end uint64) error {
	tag := Tag{
		ID:         e.next,
		Start:      start,
		End:        end,
		Text:       text,
		FontColour: ColorFontStandard,
		NoteColour: color,
	}
	if err := e.sink.WriteTag(tag); err != nil {
		return err
	}
	e.next++
	return nil
}

// EmitBlock emits a page-level tag, labelled "block N [(level L)] name".
func (e *Emitter) EmitBlock(blkno uint32, level int, name string, color Color, start, end uint64) error {
	if level != NoLevel {
		return e.Emit(fmt.Sprintf("block %d (level %d) %s", blkno, level, name), color, start, end)
	}
	return e.Emit(fmt.Sprintf("block %d %s", blkno, name), color, start, end)
}

// EmitTuple emits a tag for a field of the item at (blkno, offnum).
func (e *Emitter) EmitTuple(blkno uint32, offnum int, name string, color Color, start, end uint64) error {
	return e.Emit(fmt.Sprintf("(%d,%d) %s", blkno, offnum, name), color, start, end)
}

// Count is the number of tags emitted so far, which is also the next id.
func (e *Emitter) Count() uint32 {
	return e.next
}

// Recorder is a Sink that keeps every tag in memory.
type Recorder struct {
	Tags []Tag
}

func (r *Recorder) WriteTag(tag Tag) error {
	r.Tags = append(r.Tags, tag)
	return nil
}

// Texts returns the tag labels in emission order.
func (r *Recorder) Texts() []string {
	out := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		out[i] = t.Text
	}
	return out
}
