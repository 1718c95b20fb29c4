package macroforge

// Version is the current release of the macroforge module.
var Version = "0.3.0"
