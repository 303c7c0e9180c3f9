// Command subsift inspects and extracts the subtitle streams of media files.
//
// probe lists the classified subtitle streams of a file; extract converts
// them to one text format and copy writes them in their native format.
// Both record each run in a local journal that history reads back. status
// checks the ffmpeg binaries and directories, codecs prints the capability
// table, and config creates or validates the TOML configuration.
package main
