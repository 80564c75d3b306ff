package nlp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrModelNotReady is returned when Predict is called before a model
	// has been trained or loaded.
	ErrModelNotReady = errors.New("model not ready")
	// ErrShapeMismatch is returned when the feature vector length disagrees
	// with the model's input dimension, which happens when a cached model
	// outlives a vocabulary change.
	ErrShapeMismatch = errors.New("model shape mismatch")
)

// Model is a feed-forward scorer: one hidden ReLU layer and a softmax
// output over the label set. Weights are row-major [out][in].
type Model struct {
	InputDim int         `json:"input_dim"`
	Hidden   int         `json:"hidden"`
	Labels   []string    `json:"labels"`
	W1       [][]float64 `json:"w1"`
	B1       []float64   `json:"b1"`
	W2       [][]float64 `json:"w2"`
	B2       []float64   `json:"b2"`
}

func newModel(inputDim, hidden int, labels []string, rng *rand.Rand) *Model {
	m := &Model{
		InputDim: inputDim,
		Hidden:   hidden,
		Labels:   append([]string(nil), labels...),
		W1:       make([][]float64, hidden),
		B1:       make([]float64, hidden),
		W2:       make([][]float64, len(labels)),
		B2:       make([]float64, len(labels)),
	}
	// He init for the ReLU layer, Xavier for the softmax layer.
	scale1 := math.Sqrt(2.0 / float64(max(inputDim, 1)))
	for i := range m.W1 {
		m.W1[i] = make([]float64, inputDim)
		for j := range m.W1[i] {
			m.W1[i][j] = rng.NormFloat64() * scale1
		}
	}
	scale2 := math.Sqrt(1.0 / float64(max(hidden, 1)))
	for i := range m.W2 {
		m.W2[i] = make([]float64, hidden)
		for j := range m.W2[i] {
			m.W2[i][j] = rng.NormFloat64() * scale2
		}
	}
	return m
}

// forward computes the hidden activation and the softmax distribution.
// dropMask, when non-nil, is applied to the hidden layer (inverted dropout).
func (m *Model) forward(x []float64, dropMask []float64) (hidden, probs []float64) {
	hidden = make([]float64, m.Hidden)
	for i := 0; i < m.Hidden; i++ {
		z := m.B1[i]
		row := m.W1[i]
		for j, v := range x {
			z += row[j] * v
		}
		if z < 0 {
			z = 0
		}
		if dropMask != nil {
			z *= dropMask[i]
		}
		hidden[i] = z
	}
	logits := make([]float64, len(m.Labels))
	maxLogit := math.Inf(-1)
	for i := range logits {
		z := m.B2[i]
		row := m.W2[i]
		for j, v := range hidden {
			z += row[j] * v
		}
		logits[i] = z
		if z > maxLogit {
			maxLogit = z
		}
	}
	probs = make([]float64, len(logits))
	var sum float64
	for i, z := range logits {
		e := math.Exp(z - maxLogit)
		probs[i] = e
		sum += e
	}
	for i := range probs {
		probs[i] /= sum
	}
	return hidden, probs
}

// Predict returns the argmax label and its probability. Ties break to the
// lowest label index in sorted order.
func (m *Model) Predict(vec []float64) (string, float64, error) {
	if m == nil {
		return "", 0, ErrModelNotReady
	}
	if len(vec) != m.InputDim {
		return "", 0, fmt.Errorf("%w: vector has %d features, model expects %d", ErrShapeMismatch, len(vec), m.InputDim)
	}
	_, probs := m.forward(vec, nil)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return m.Labels[best], probs[best], nil
}
