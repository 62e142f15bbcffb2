package catalog

import "github.com/aretw0/walkthrough/pkg/domain"

// Default returns the built-in tour of the annotation interface.
func Default() *Catalog {
	pointsUnsure := "Not sure? Select all difficult annotations and click here (or press the U key)"
	pointsRemove := "Click (or press R), then click into the annotation to remove it. Hint: remove selected annotations directly with the Del key."

	return &Catalog{
		Entries: []Entry{
			{Target: domain.TargetGallery, Text: "View the next image(s) here."},
			{Target: domain.TargetToolsContainer, Text: "Select the correct label class (or press its number on the keyboard)."},
			{Target: domain.TargetAddAnnotation, Text: "Click to add a new annotation (hint: you can also use the W key)."},
			{Target: domain.TargetGallery, Slot: SlotAdd},
			{Target: domain.TargetGallery, Slot: SlotChange},
			{Target: domain.TargetLabelAll, Text: "Label everything with the foreground class (or press the A key)"},
			{Target: domain.TargetUnsure, Slot: SlotUnsure},
			{Target: domain.TargetRemoveAnnotation, Slot: SlotRemove},
			{Target: domain.TargetClearAll, Text: "Remove all annotations at once (or press C)"},
			{Target: domain.TargetNext, Text: `Satisfied with your annotations? Click "Next" (or press the right arrow key).`},
			{Target: domain.TargetPrevious, Text: `Want to review the last image(s)? Click "Previous" (or press the left arrow key).`},
		},
		Variants: map[domain.Mode]map[Slot]string{
			domain.ModeLabels: {
				SlotAdd:    "Then, click to assign label. Click again or option-click to remove it.",
				SlotChange: "To change the class, select the correct class first and then click into the image.",
				SlotUnsure: "Not sure? Click (or press U) and click the difficult image (tip: you can also hover over the difficult image and press U directly).",
				SlotRemove: "Click (or press R), then click into the image to remove its label.",
			},
			domain.ModePoints: {
				SlotAdd:    "Then, click into the image to put a point at the given position.",
				SlotChange: "To change the class of a point, select the correct class first and then click the point.",
				SlotUnsure: pointsUnsure,
				SlotRemove: pointsRemove,
			},
			domain.ModeBoundingBoxes: {
				SlotAdd:    "Then, click and drag to draw a bounding box in the image.",
				SlotChange: "To change the class of a bounding box, select the correct class first and then click the bounding box.",
				SlotUnsure: pointsUnsure,
				SlotRemove: pointsRemove,
			},
		},
	}
}
