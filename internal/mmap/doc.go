// Package mmap maps local point files read-only into memory.
//
// The point parser reads the whole file front to back, so a Mapping is
// usually advised with AccessSequential right after Open.
//
//	m, err := mmap.Open("points.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses CreateFileMapping and
// MapViewOfFile; Advise is a no-op there.
package mmap
