package domain

// Target is a logical reference to a UI element, named after its element id.
type Target string

// Targets of the annotation interface.
const (
	TargetGallery          Target = "gallery"
	TargetToolsContainer   Target = "tools-container"
	TargetAddAnnotation    Target = "add-annotation"
	TargetLabelAll         Target = "labelAll-button"
	TargetUnsure           Target = "unsure-button"
	TargetRemoveAnnotation Target = "remove-annotation"
	TargetClearAll         Target = "clearAll-button"
	TargetNext             Target = "next-button"
	TargetPrevious         Target = "previous-button"
)

// DefaultDrawer is the collapsible class drawer that slides in before its tooltip.
const DefaultDrawer = TargetToolsContainer

// Selector returns the CSS selector resolving the target.
func (t Target) Selector() string {
	return "#" + string(t)
}

func (t Target) String() string {
	return string(t)
}

// Step is a single tooltip of the tour.
type Step struct {
	Target  Target `json:"target" yaml:"target"`
	Message string `json:"message" yaml:"message"`
}
