package settings

var Version = "0.1"

// Input file: assembly source, or a program image with -d
var InFilename = ""

// Output file ("" means stdout for listings, derived name for images)
var OutFilename = ""

// Output container for assembly: "bin", "hex" or "c"
var Format = "bin"

// Array name used by the "c" output format
var ArrayName = "fv1_program"

// Disassemble an image instead of assembling source
var Disassemble = false

// Keep trailing padding NOPs in disassembly listings
var KeepNops = false

// Run the (currently no-op) optimization pass
var Optimize = false

// Suppress the banner and progress output
var Quiet = false
