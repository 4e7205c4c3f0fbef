// Package buffer holds the document being viewed: an ordered, growable
// sequence of rows, each a line of text without its line terminator.
//
// Rows are raw bytes. The editor treats one byte as one terminal cell and
// does not interpret encodings.
//
// Basic usage:
//
//	buf, err := buffer.LoadFile("notes.txt", buffer.WithMaxRows(1000))
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < buf.NumRows(); i++ {
//	    fmt.Printf("%s\n", buf.Row(i))
//	}
package buffer
