package nnue

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestFeatureIndex(t *testing.T) {
	// white pawn on a1 from white's perspective is feature 0
	f := Feature{Color: 0, Piece: 0, Square: 0}
	if idx := f.Index(0); idx != 0 {
		t.Errorf("index = %d, want 0", idx)
	}
	// from black's perspective the square flips and the color plane swaps
	if idx := f.Index(1); idx != colorOffset+56 {
		t.Errorf("index = %d, want %d", idx, colorOffset+56)
	}

	// black king on e8 from black's perspective: own piece, square e1
	f = Feature{Color: 1, Piece: 5, Square: 60}
	if idx := f.Index(1); idx != 5*pieceOffset+4 {
		t.Errorf("index = %d, want %d", idx, 5*pieceOffset+4)
	}

	// every feature/perspective pair stays in range
	for color := uint8(0); color < 2; color++ {
		for piece := uint8(0); piece < 6; piece++ {
			for sq := 0; sq < 64; sq++ {
				for persp := uint8(0); persp < 2; persp++ {
					idx := Feature{Color: color, Piece: piece, Square: uint8(sq)}.Index(persp)
					if idx < 0 || idx >= InputSize {
						t.Fatalf("index %d out of range for c%d p%d s%d persp%d",
							idx, color, piece, sq, persp)
					}
				}
			}
		}
	}
}

func TestAccumulatorApplyShapes(t *testing.T) {
	net := Default
	base := net.NewAccumulator()

	add := Feature{Color: 0, Piece: 1, Square: 18}
	sub := Feature{Color: 0, Piece: 1, Square: 1}
	sub2 := Feature{Color: 1, Piece: 0, Square: 18}

	// (1 add, 1 sub) must equal add/sub applied in place
	var u MoveUpdates
	u.Add(add.Color, add.Piece, add.Square)
	u.Sub(sub.Color, sub.Piece, sub.Square)

	var got Accumulator
	base.Apply(net, &got, u)

	want := base
	want.AddFeature(net, add)
	subFeature(net, &want, sub)
	if got != want {
		t.Error("(1,1) apply mismatch")
	}

	// (1 add, 2 sub): a capture shape
	var u2 MoveUpdates
	u2.Add(add.Color, add.Piece, add.Square)
	u2.Sub(sub.Color, sub.Piece, sub.Square)
	u2.Sub(sub2.Color, sub2.Piece, sub2.Square)

	base.Apply(net, &got, u2)
	want = base
	want.AddFeature(net, add)
	subFeature(net, &want, sub)
	subFeature(net, &want, sub2)
	if got != want {
		t.Error("(1,2) apply mismatch")
	}
}

// subFeature is the test-side inverse of AddFeature.
func subFeature(n *Network, acc *Accumulator, f Feature) {
	white := &n.FeatureWeights[f.Index(0)]
	black := &n.FeatureWeights[f.Index(1)]
	for i := 0; i < HiddenSize; i++ {
		acc.White[i] -= white[i]
		acc.Black[i] -= black[i]
	}
}

func TestEvaluateScale(t *testing.T) {
	net := &Network{}
	net.OutputBias = 41 // 41 * 400 / (255 * 64) scales to exactly 1 centipawn

	var vals [HiddenSize]int16
	if got := net.Evaluate(&vals); got != 1 {
		t.Errorf("Evaluate = %d, want 1", got)
	}

	// saturated hidden units clamp at QA
	for i := range vals {
		vals[i] = 32000
	}
	for i := range net.OutputWeights {
		net.OutputWeights[i] = 1
	}
	net.OutputBias = 0
	want := HiddenSize * QA * EvalScale / (QA * QB)
	if got := net.Evaluate(&vals); got != want {
		t.Errorf("Evaluate = %d, want %d", got, want)
	}
}

func TestReadFromRoundTrip(t *testing.T) {
	src := newFillerNetwork()

	var buf bytes.Buffer
	for i := 0; i < InputSize; i++ {
		if err := binary.Write(&buf, binary.LittleEndian, &src.FeatureWeights[i]); err != nil {
			t.Fatal(err)
		}
	}
	for _, field := range []interface{}{&src.FeatureBias, &src.OutputWeights, src.OutputBias} {
		if err := binary.Write(&buf, binary.LittleEndian, field); err != nil {
			t.Fatal(err)
		}
	}
	if buf.Len() != fileSize {
		t.Fatalf("weight stream is %d bytes, want %d", buf.Len(), fileSize)
	}

	loaded := &Network{}
	if err := loaded.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if *loaded != *src {
		t.Error("loaded network differs from source")
	}
}

func TestReadFromTruncated(t *testing.T) {
	loaded := &Network{}
	if err := loaded.ReadFrom(bytes.NewReader(make([]byte, 100))); err == nil {
		t.Error("truncated stream should fail")
	}
}
