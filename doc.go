/*
Package walkthrough is an onboarding tooltip tour for the image annotation interface.

It highlights interface elements one at a time with contextual help text,
advancing on every click, and remembers through a durable flag that the user
has already seen it so it does not repeat.

# Concept

The tour is a small state machine (not_started -> showing(i) -> finished) over
an ordered list of steps. The package manages the cursor, the drawer animation
ordering and the "seen" flag, while your application ("Host") provides the UI
primitives through ports: a Surface (element lookup, scrolling, tooltips), a
UIBlocker, a SeenStore and a ClickSource. The same tour therefore runs in a
browser (through the HTTP adapter), in a terminal, or in a test.

# Usage

	surface := memory.NewSurface(domain.TargetGallery, domain.TargetNext)
	clicks := memory.NewClickBus()

	tour, err := walkthrough.New(domain.ModeLabels, surface,
		walkthrough.WithClickSource(clicks),
		walkthrough.WithSeenStore(redis.NewFromClient(client)),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Shows the tour only if the user has not completed it before.
	if _, err := tour.AutoStart(ctx); err != nil {
		log.Fatal(err)
	}

	// Every click on the document advances the tour.
	clicks.Click(ctx)
*/
package walkthrough
