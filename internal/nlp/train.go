package nlp

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Training constants. These mirror the offline training script so the
// runtime model and the reported metrics come from the same procedure.
const (
	hiddenUnits  = 32
	dropoutRate  = 0.2
	learningRate = 0.01
	epochs       = 25
	batchSize    = 8
	valRatio     = 0.2
	trainSeed    = 4243087
	adamBeta1    = 0.9
	adamBeta2    = 0.999
	adamEps      = 1e-8
)

// History holds per-epoch training diagnostics.
type History struct {
	Acc     []float64 `json:"acc"`
	ValAcc  []float64 `json:"val_acc"`
	Loss    []float64 `json:"loss"`
	ValLoss []float64 `json:"val_loss"`
}

// IntentMetrics is precision/recall/F1 for one intent on the validation
// split. Empty denominators default to 0, no smoothing.
type IntentMetrics struct {
	Intent    string  `json:"intent"`
	Support   int     `json:"support"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Report summarizes a full training run.
type Report struct {
	Samples        int             `json:"samples"`
	Intents        int             `json:"intents"`
	Vocab          int             `json:"vocab"`
	Epochs         int             `json:"epochs"`
	Params         int             `json:"params"`
	TrainExamples  int             `json:"train_examples"`
	ValExamples    int             `json:"val_examples"`
	History        History         `json:"history"`
	TrainAcc       float64         `json:"train_acc"`
	ValAcc         float64         `json:"val_acc"`
	TrainLoss      float64         `json:"train_loss"`
	ValLoss        float64         `json:"val_loss"`
	MacroPrecision float64         `json:"macro_precision"`
	MacroRecall    float64         `json:"macro_recall"`
	MacroF1        float64         `json:"macro_f1"`
	PerIntent      []IntentMetrics `json:"per_intent"`
	Confusion      [][]int         `json:"confusion"`
	Labels         []string        `json:"labels"`
}

// stratifiedSplit reserves roughly valRatio of each intent for validation,
// at least one example per intent. If that would leave an intent with no
// training examples, one validation example moves back to training.
func stratifiedSplit(samples []Sample, labels []string, rng *rand.Rand) (train, val []Sample) {
	byIntent := make(map[string][]Sample)
	for _, s := range samples {
		byIntent[s.Intent] = append(byIntent[s.Intent], s)
	}
	for _, intent := range labels {
		group := append([]Sample(nil), byIntent[intent]...)
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		nVal := int(math.Round(float64(len(group)) * valRatio))
		if nVal < 1 {
			nVal = 1
		}
		if nVal > len(group) {
			nVal = len(group)
		}
		valPart := group[:nVal]
		trainPart := group[nVal:]
		if len(trainPart) == 0 && len(valPart) > 1 {
			trainPart = append(trainPart, valPart[len(valPart)-1])
			valPart = valPart[:len(valPart)-1]
		}
		train = append(train, trainPart...)
		val = append(val, valPart...)
	}
	return train, val
}

// adamState carries first/second moment estimates for one parameter matrix.
type adamState struct {
	m, v [][]float64
}

func newAdamState(rows, cols int) *adamState {
	s := &adamState{m: make([][]float64, rows), v: make([][]float64, rows)}
	for i := 0; i < rows; i++ {
		s.m[i] = make([]float64, cols)
		s.v[i] = make([]float64, cols)
	}
	return s
}

func (s *adamState) step(w [][]float64, grad [][]float64, t int) {
	c1 := 1 - math.Pow(adamBeta1, float64(t))
	c2 := 1 - math.Pow(adamBeta2, float64(t))
	for i := range w {
		for j := range w[i] {
			g := grad[i][j]
			s.m[i][j] = adamBeta1*s.m[i][j] + (1-adamBeta1)*g
			s.v[i][j] = adamBeta2*s.v[i][j] + (1-adamBeta2)*g*g
			mHat := s.m[i][j] / c1
			vHat := s.v[i][j] / c2
			w[i][j] -= learningRate * mHat / (math.Sqrt(vHat) + adamEps)
		}
	}
}

// Train fits a fresh model on the corpus and returns it with a full metrics
// report. The RNG is seeded, so identical corpora produce identical runs.
func Train(samples []Sample, vocab, labels []string) (*Model, *Report, error) {
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("training corpus is empty")
	}
	if len(labels) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 intents, got %d", len(labels))
	}
	labelIdx := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIdx[l] = i
	}
	for _, s := range samples {
		if _, ok := labelIdx[s.Intent]; !ok {
			return nil, nil, fmt.Errorf("sample intent %q not in label set", s.Intent)
		}
	}

	rng := rand.New(rand.NewSource(trainSeed))
	train, val := stratifiedSplit(samples, labels, rng)

	type example struct {
		x []float64
		y int
	}
	toXY := func(list []Sample) []example {
		out := make([]example, len(list))
		for i, s := range list {
			out[i] = example{x: Vectorize(s.Text, vocab), y: labelIdx[s.Intent]}
		}
		return out
	}
	trainSet := toXY(train)
	valSet := toXY(val)

	model := newModel(len(vocab), hiddenUnits, labels, rng)
	optW1 := newAdamState(hiddenUnits, len(vocab))
	optB1 := newAdamState(1, hiddenUnits)
	optW2 := newAdamState(len(labels), hiddenUnits)
	optB2 := newAdamState(1, len(labels))

	evaluate := func(set []example) (acc, loss float64) {
		if len(set) == 0 {
			return 0, 0
		}
		correct := 0
		for _, ex := range set {
			_, probs := model.forward(ex.x, nil)
			best := 0
			for i, p := range probs {
				if p > probs[best] {
					best = i
				}
			}
			if best == ex.y {
				correct++
			}
			loss += -math.Log(math.Max(probs[ex.y], 1e-12))
		}
		return float64(correct) / float64(len(set)), loss / float64(len(set))
	}

	hist := History{}
	step := 0
	gradW1 := make([][]float64, hiddenUnits)
	for i := range gradW1 {
		gradW1[i] = make([]float64, len(vocab))
	}
	gradB1 := [][]float64{make([]float64, hiddenUnits)}
	gradW2 := make([][]float64, len(labels))
	for i := range gradW2 {
		gradW2[i] = make([]float64, hiddenUnits)
	}
	gradB2 := [][]float64{make([]float64, len(labels))}

	zero := func(m [][]float64) {
		for i := range m {
			for j := range m[i] {
				m[i][j] = 0
			}
		}
	}

	for epoch := 0; epoch < epochs; epoch++ {
		rng.Shuffle(len(trainSet), func(i, j int) { trainSet[i], trainSet[j] = trainSet[j], trainSet[i] })
		for start := 0; start < len(trainSet); start += batchSize {
			end := start + batchSize
			if end > len(trainSet) {
				end = len(trainSet)
			}
			batch := trainSet[start:end]
			zero(gradW1)
			zero(gradB1)
			zero(gradW2)
			zero(gradB2)
			for _, ex := range batch {
				mask := make([]float64, hiddenUnits)
				for i := range mask {
					if rng.Float64() >= dropoutRate {
						mask[i] = 1 / (1 - dropoutRate)
					}
				}
				hidden, probs := model.forward(ex.x, mask)
				// Softmax + cross-entropy gradient: dz2 = probs - onehot(y).
				dz2 := make([]float64, len(labels))
				copy(dz2, probs)
				dz2[ex.y]--
				for i := range dz2 {
					gradB2[0][i] += dz2[i]
					for j := range hidden {
						gradW2[i][j] += dz2[i] * hidden[j]
					}
				}
				for j := 0; j < hiddenUnits; j++ {
					if hidden[j] <= 0 {
						continue
					}
					var dh float64
					for i := range dz2 {
						dh += model.W2[i][j] * dz2[i]
					}
					dh *= mask[j]
					gradB1[0][j] += dh
					for k, v := range ex.x {
						if v != 0 {
							gradW1[j][k] += dh * v
						}
					}
				}
			}
			n := float64(len(batch))
			for _, g := range []([][]float64){gradW1, gradB1, gradW2, gradB2} {
				for i := range g {
					for j := range g[i] {
						g[i][j] /= n
					}
				}
			}
			step++
			optW1.step(model.W1, gradW1, step)
			optB1.step([][]float64{model.B1}, gradB1, step)
			optW2.step(model.W2, gradW2, step)
			optB2.step([][]float64{model.B2}, gradB2, step)
		}
		acc, loss := evaluate(trainSet)
		valAcc, valLoss := evaluate(valSet)
		hist.Acc = append(hist.Acc, acc)
		hist.Loss = append(hist.Loss, loss)
		hist.ValAcc = append(hist.ValAcc, valAcc)
		hist.ValLoss = append(hist.ValLoss, valLoss)
	}

	report := &Report{
		Samples:       len(samples),
		Intents:       len(labels),
		Vocab:         len(vocab),
		Epochs:        epochs,
		Params:        hiddenUnits*len(vocab) + hiddenUnits + len(labels)*hiddenUnits + len(labels),
		TrainExamples: len(train),
		ValExamples:   len(val),
		History:       hist,
		Labels:        append([]string(nil), labels...),
	}
	report.TrainAcc, report.TrainLoss = evaluate(trainSet)
	report.ValAcc, report.ValLoss = evaluate(valSet)

	// Validation confusion matrix, rows = true, cols = predicted.
	k := len(labels)
	cm := make([][]int, k)
	for i := range cm {
		cm[i] = make([]int, k)
	}
	for _, ex := range valSet {
		_, probs := model.forward(ex.x, nil)
		best := 0
		for i, p := range probs {
			if p > probs[best] {
				best = i
			}
		}
		cm[ex.y][best]++
	}
	report.Confusion = cm

	for c := 0; c < k; c++ {
		tp := cm[c][c]
		fn, fp, support := 0, 0, 0
		for j := 0; j < k; j++ {
			support += cm[c][j]
			if j != c {
				fn += cm[c][j]
				fp += cm[j][c]
			}
		}
		var precision, recall, f1 float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		report.PerIntent = append(report.PerIntent, IntentMetrics{
			Intent: labels[c], Support: support,
			Precision: precision, Recall: recall, F1: f1,
		})
		report.MacroPrecision += precision / float64(k)
		report.MacroRecall += recall / float64(k)
		report.MacroF1 += f1 / float64(k)
	}
	sort.SliceStable(report.PerIntent, func(i, j int) bool {
		return report.PerIntent[i].F1 > report.PerIntent[j].F1
	})
	return model, report, nil
}
