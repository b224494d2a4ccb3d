package tetris

import (
	"fmt"

	"github.com/vovakirdan/tetrion/internal/core"
)

const kickCount = 5

type kickSet [kickCount]core.Point

// Spin is a rotation direction.
type Spin int

const (
	SpinCW Spin = iota
	SpinCCW
)

func (s Spin) String() string {
	switch s {
	case SpinCW:
		return "cw"
	case SpinCCW:
		return "ccw"
	default:
		return "unknown"
	}
}

type kickClass int

const (
	classJLSTZ kickClass = iota
	classI
	classO
)

type kickKey struct {
	class    kickClass
	from, to int
	dir      Spin
}

func classOf(k Kind) kickClass {
	switch k {
	case KindI:
		return classI
	case KindO:
		return classO
	default:
		return classJLSTZ
	}
}

func kicks(pts ...[2]int) kickSet {
	var s kickSet
	for i, p := range pts {
		s[i] = core.Point{X: p[0], Y: p[1]}
	}
	return s
}

// Offsets are in grid space, y grows downward.
var kickTables = map[kickKey]kickSet{
	{classJLSTZ, 0, 1, SpinCW}:  kicks([2]int{0, 0}, [2]int{-1, 0}, [2]int{-1, 1}, [2]int{0, -2}, [2]int{-1, -2}),
	{classJLSTZ, 1, 2, SpinCW}:  kicks([2]int{0, 0}, [2]int{1, 0}, [2]int{1, -1}, [2]int{0, 2}, [2]int{1, 2}),
	{classJLSTZ, 2, 3, SpinCW}:  kicks([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{0, -2}, [2]int{1, -2}),
	{classJLSTZ, 3, 0, SpinCW}:  kicks([2]int{0, 0}, [2]int{-1, 0}, [2]int{-1, -1}, [2]int{0, 2}, [2]int{-1, 2}),
	{classJLSTZ, 1, 0, SpinCCW}: kicks([2]int{0, 0}, [2]int{1, 0}, [2]int{1, -1}, [2]int{0, 2}, [2]int{1, 2}),
	{classJLSTZ, 2, 1, SpinCCW}: kicks([2]int{0, 0}, [2]int{-1, 0}, [2]int{-1, 1}, [2]int{0, -2}, [2]int{-1, -2}),
	{classJLSTZ, 3, 2, SpinCCW}: kicks([2]int{0, 0}, [2]int{-1, 0}, [2]int{-1, -1}, [2]int{0, 2}, [2]int{-1, 2}),
	{classJLSTZ, 0, 3, SpinCCW}: kicks([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{0, -2}, [2]int{1, -2}),

	{classI, 0, 1, SpinCW}:  kicks([2]int{0, 0}, [2]int{-2, 0}, [2]int{1, 0}, [2]int{-2, -1}, [2]int{1, 2}),
	{classI, 1, 2, SpinCW}:  kicks([2]int{0, 0}, [2]int{-1, 0}, [2]int{2, 0}, [2]int{-1, 2}, [2]int{2, -1}),
	{classI, 2, 3, SpinCW}:  kicks([2]int{0, 0}, [2]int{2, 0}, [2]int{-1, 0}, [2]int{2, 1}, [2]int{-1, -2}),
	{classI, 3, 0, SpinCW}:  kicks([2]int{0, 0}, [2]int{1, 0}, [2]int{-2, 0}, [2]int{1, -2}, [2]int{-2, 1}),
	{classI, 1, 0, SpinCCW}: kicks([2]int{0, 0}, [2]int{2, 0}, [2]int{-1, 0}, [2]int{2, 1}, [2]int{-1, -2}),
	{classI, 2, 1, SpinCCW}: kicks([2]int{0, 0}, [2]int{1, 0}, [2]int{-2, 0}, [2]int{1, -2}, [2]int{-2, 1}),
	{classI, 3, 2, SpinCCW}: kicks([2]int{0, 0}, [2]int{-2, 0}, [2]int{1, 0}, [2]int{-2, -1}, [2]int{1, 2}),
	{classI, 0, 3, SpinCCW}: kicks([2]int{0, 0}, [2]int{-1, 0}, [2]int{2, 0}, [2]int{-1, 2}, [2]int{2, -1}),
}

// kickTable returns the candidates for a rotation transition.
func kickTable(kind Kind, from, to int, dir Spin) kickSet {
	class := classOf(kind)
	if class == classO {
		return kickSet{}
	}
	set, ok := kickTables[kickKey{class, from, to, dir}]
	if !ok {
		panic(fmt.Sprintf("tetris: no kick table for %s %d->%d %s", kind, from, to, dir))
	}
	return set
}
