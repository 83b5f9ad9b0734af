package ecs

import "strings"

// Access is a system's declared read and write set over stores and resources.
// Two systems may run concurrently only if neither writes something the other
// reads or writes.
type Access struct {
	reads  []Component
	writes []Component
}

// Reads starts an access declaration with read-only components.
func Reads(cs ...Component) Access {
	return Access{reads: cs}
}

// Writes starts an access declaration with exclusive components.
func Writes(cs ...Component) Access {
	return Access{writes: cs}
}

// Read returns a copy of a with cs added to the read set.
func (a Access) Read(cs ...Component) Access {
	a.reads = append(append([]Component(nil), a.reads...), cs...)
	return a
}

// Write returns a copy of a with cs added to the write set.
func (a Access) Write(cs ...Component) Access {
	a.writes = append(append([]Component(nil), a.writes...), cs...)
	return a
}

func (a Access) writesTo(id ComponentID) bool {
	for _, c := range a.writes {
		if c.ComponentID() == id {
			return true
		}
	}
	return false
}

func (a Access) touches(id ComponentID) bool {
	if a.writesTo(id) {
		return true
	}
	for _, c := range a.reads {
		if c.ComponentID() == id {
			return true
		}
	}
	return false
}

// Conflicts reports whether a and b cannot run at the same time.
func (a Access) Conflicts(b Access) bool {
	for _, c := range a.writes {
		if b.touches(c.ComponentID()) {
			return true
		}
	}
	for _, c := range b.writes {
		if a.touches(c.ComponentID()) {
			return true
		}
	}
	return false
}

// Empty reports a declaration with no components. The runner treats an empty
// declaration as exclusive, since it says nothing about what the system touches.
func (a Access) Empty() bool {
	return len(a.reads) == 0 && len(a.writes) == 0
}

func (a Access) String() string {
	var b strings.Builder
	b.WriteString("r[")
	for i, c := range a.reads {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Name())
	}
	b.WriteString("] w[")
	for i, c := range a.writes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Name())
	}
	b.WriteByte(']')
	return b.String()
}
