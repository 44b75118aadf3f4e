package nnue

// Accumulator holds the hidden-layer sums for both perspectives. A fresh
// accumulator equals the network's feature bias; features are added and
// subtracted incrementally as moves are made.
type Accumulator struct {
	White [HiddenSize]int16
	Black [HiddenSize]int16
}

// NewAccumulator returns an accumulator initialised to the feature bias.
func (n *Network) NewAccumulator() Accumulator {
	var acc Accumulator
	acc.White = n.FeatureBias
	acc.Black = n.FeatureBias
	return acc
}

// AddFeature adds one feature's weights to both perspectives in place.
// Used by the from-scratch refresh.
func (acc *Accumulator) AddFeature(n *Network, f Feature) {
	white := &n.FeatureWeights[f.Index(0)]
	black := &n.FeatureWeights[f.Index(1)]
	for i := 0; i < HiddenSize; i++ {
		acc.White[i] += white[i]
		acc.Black[i] += black[i]
	}
}

// Apply writes src + adds - subs into dst, fused per update shape. src and
// dst must not alias; the accumulator stack guarantees this by always
// deriving ply+1 from ply.
func (acc *Accumulator) Apply(n *Network, dst *Accumulator, u MoveUpdates) {
	switch {
	case u.nadds == 1 && u.nsubs == 1:
		acc.addSub(n, dst, u.adds[0], u.subs[0])
	case u.nadds == 1 && u.nsubs == 2:
		acc.addSub2(n, dst, u.adds[0], u.subs)
	case u.nadds == 2 && u.nsubs == 2:
		acc.add2Sub2(n, dst, u.adds, u.subs)
	}
}

func (acc *Accumulator) addSub(n *Network, dst *Accumulator, add, sub Feature) {
	addW, subW := &n.FeatureWeights[add.Index(0)], &n.FeatureWeights[sub.Index(0)]
	for i := 0; i < HiddenSize; i++ {
		dst.White[i] = acc.White[i] + addW[i] - subW[i]
	}
	addB, subB := &n.FeatureWeights[add.Index(1)], &n.FeatureWeights[sub.Index(1)]
	for i := 0; i < HiddenSize; i++ {
		dst.Black[i] = acc.Black[i] + addB[i] - subB[i]
	}
}

func (acc *Accumulator) addSub2(n *Network, dst *Accumulator, add Feature, subs [2]Feature) {
	addW := &n.FeatureWeights[add.Index(0)]
	sub1W, sub2W := &n.FeatureWeights[subs[0].Index(0)], &n.FeatureWeights[subs[1].Index(0)]
	for i := 0; i < HiddenSize; i++ {
		dst.White[i] = acc.White[i] + addW[i] - sub1W[i] - sub2W[i]
	}
	addB := &n.FeatureWeights[add.Index(1)]
	sub1B, sub2B := &n.FeatureWeights[subs[0].Index(1)], &n.FeatureWeights[subs[1].Index(1)]
	for i := 0; i < HiddenSize; i++ {
		dst.Black[i] = acc.Black[i] + addB[i] - sub1B[i] - sub2B[i]
	}
}

func (acc *Accumulator) add2Sub2(n *Network, dst *Accumulator, adds, subs [2]Feature) {
	add1W, add2W := &n.FeatureWeights[adds[0].Index(0)], &n.FeatureWeights[adds[1].Index(0)]
	sub1W, sub2W := &n.FeatureWeights[subs[0].Index(0)], &n.FeatureWeights[subs[1].Index(0)]
	for i := 0; i < HiddenSize; i++ {
		dst.White[i] = acc.White[i] + add1W[i] + add2W[i] - sub1W[i] - sub2W[i]
	}
	add1B, add2B := &n.FeatureWeights[adds[0].Index(1)], &n.FeatureWeights[adds[1].Index(1)]
	sub1B, sub2B := &n.FeatureWeights[subs[0].Index(1)], &n.FeatureWeights[subs[1].Index(1)]
	for i := 0; i < HiddenSize; i++ {
		dst.Black[i] = acc.Black[i] + add1B[i] + add2B[i] - sub1B[i] - sub2B[i]
	}
}

// MoveUpdates records the feature deltas of a single move: up to two adds
// and two subs. Quiet moves are (1 add, 1 sub), captures and en passant
// (1, 2), castling (2, 2).
type MoveUpdates struct {
	adds  [2]Feature
	subs  [2]Feature
	nadds uint8
	nsubs uint8
}

// Add records a feature gained by the move.
func (u *MoveUpdates) Add(color, piece, square uint8) {
	u.adds[u.nadds] = Feature{Color: color, Piece: piece, Square: square}
	u.nadds++
}

// Sub records a feature lost by the move.
func (u *MoveUpdates) Sub(color, piece, square uint8) {
	u.subs[u.nsubs] = Feature{Color: color, Piece: piece, Square: square}
	u.nsubs++
}
