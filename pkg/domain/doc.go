/*
Package domain contains the core domain models of the walkthrough engine.

It defines the fundamental entities of the tour, such as Steps, Targets and the
driver State. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Mode: The annotation mode of the host UI (labels, points, bounding boxes).
  - Step: A (Target, Message) pair shown as a single tooltip.
  - State: The snapshot of a running tour (Mode, cursor Index, Status).
  - Command: A structural representation of what the host surface must apply.
*/
package domain
