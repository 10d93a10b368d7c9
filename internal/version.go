package internal

// Version is the current hanjarecall release version
const Version = "0.1.0"
