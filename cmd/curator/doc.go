// Command curator is the file organizer CLI and daemon entry point.
package main
