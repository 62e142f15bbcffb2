/*
Package ports defines the driven ports (interfaces) for the walkthrough driver.

These interfaces decouple the tour logic from the host UI, allowing the same
driver to run against a browser, a terminal or a test double.

# Key Interfaces

  - Surface: DOM-like primitives (lookup, scroll, drawer animation, tooltips).
  - UIBlocker: Suspends general UI interaction while a tooltip is shown.
  - SeenStore: Durable "already seen" flag (cookie, Redis, SQLite, file).
  - ClickSource: Delivers clicks that advance the tour.
*/
package ports
