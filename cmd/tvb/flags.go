package main

import "fmt"

// onceValue is a string flag that rejects a second occurrence. Supplying
// -i or -o twice almost always means a mangled shell history entry, and
// silently taking the last value would transcode into the wrong place.
type onceValue struct {
	name  string
	set   bool
	value string
}

func (v *onceValue) String() string { return v.value }

func (v *onceValue) Set(value string) error {
	if v.set {
		return fmt.Errorf("--%s may only be given once", v.name)
	}
	v.set = true
	v.value = value
	return nil
}

func (v *onceValue) Type() string { return "string" }
