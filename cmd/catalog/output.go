package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// emit writes v as JSON in --json mode, otherwise calls text.
func (a *app) emit(w io.Writer, v any, text func(w io.Writer)) error {
	if a.flags.json {
		return writeJSON(w, v)
	}
	text(w)
	return nil
}
