package lesson

// AnimationType names a reveal style.
type AnimationType string

const (
	AnimationTyping  AnimationType = "typing"
	AnimationDrawing AnimationType = "drawing"
	AnimationFadeIn  AnimationType = "fade_in"
	AnimationSlideIn AnimationType = "slide_in"
)

// Known reports whether the animation type has a dedicated reveal style.
func (a AnimationType) Known() bool {
	switch a {
	case AnimationTyping, AnimationDrawing, AnimationFadeIn, AnimationSlideIn:
		return true
	default:
		return false
	}
}

// ContentType names the kind of a content block.
type ContentType string

const (
	ContentParagraph ContentType = "paragraph"
	ContentText      ContentType = "text"
	ContentList      ContentType = "list"
	ContentCode      ContentType = "code"
	ContentMermaid   ContentType = "mermaid"
)

// Known reports whether the content type has a dedicated renderer.
func (c ContentType) Known() bool {
	switch c {
	case ContentParagraph, ContentText, ContentList, ContentCode, ContentMermaid:
		return true
	default:
		return false
	}
}

const (
	// DefaultSectionSeconds is applied when a section omits duration_seconds.
	DefaultSectionSeconds = 4.0
	// DefaultAnimation is applied when a section omits animation_type.
	DefaultAnimation = AnimationTyping
)

// Block is one typed unit of content inside a section.
type Block struct {
	Type      ContentType
	Content   string
	Language  string
	Animation AnimationType
}

// Section is one top-level unit of a lesson with a heading and one timed
// animation budget shared by all of its blocks.
type Section struct {
	Heading         string
	Blocks          []Block
	DurationSeconds float64
	Animation       AnimationType
}

// DurationMs returns the section's animation budget in milliseconds.
func (s Section) DurationMs() float64 {
	return s.DurationSeconds * 1000
}

// Content is a normalized lesson. Sections are in presentation order.
type Content struct {
	Title    string
	Sections []Section
}

// Empty reports whether the lesson has no sections.
func (c *Content) Empty() bool {
	return c == nil || len(c.Sections) == 0
}

// SectionCount returns the number of sections, tolerating a nil receiver.
func (c *Content) SectionCount() int {
	if c == nil {
		return 0
	}
	return len(c.Sections)
}

// Section returns the section at index and whether it exists.
func (c *Content) Section(index int) (Section, bool) {
	if c == nil || index < 0 || index >= len(c.Sections) {
		return Section{}, false
	}
	return c.Sections[index], true
}
