package walkthrough

// Version is the release of the walkthrough module.
const Version = "0.4.0"
