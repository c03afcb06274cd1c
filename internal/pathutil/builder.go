package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder tracks the location of a node during a document walk.
// Segments are pushed and popped as the walk descends and returns; the
// location is only materialized when String or Pointer is called.
type PathBuilder struct {
	segments []segment
}

type segment struct {
	token   string
	isIndex bool
}

// Push adds a map key segment to the path.
func (p *PathBuilder) Push(key string) {
	p.segments = append(p.segments, segment{token: key})
}

// PushIndex adds an array index segment.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, segment{token: strconv.Itoa(i), isIndex: true})
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// Depth returns the number of segments.
func (p *PathBuilder) Depth() int {
	return len(p.segments)
}

// Last returns the most recent map key segment, skipping array indices.
func (p *PathBuilder) Last() string {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if !p.segments[i].isIndex {
			return p.segments[i].token
		}
	}
	return ""
}

// String renders the path in dotted form: "paths./auth.post.parameters[0]".
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	for i, seg := range p.segments {
		if seg.isIndex {
			b.WriteByte('[')
			b.WriteString(seg.token)
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.token)
	}
	return b.String()
}

// Pointer renders the path as a local JSON pointer ref: "#/paths/~1auth/post/parameters/0".
func (p *PathBuilder) Pointer() string {
	tokens := make([]string, len(p.segments))
	for i, seg := range p.segments {
		tokens[i] = seg.token
	}
	return JoinPointer(tokens...)
}
