package analysis

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// PatternDetector scans recent candles for classical chart formations.
// Matches are advisory: they surface on evaluations and in reasoning but
// never enter the composite score.
type PatternDetector struct {
	window      int
	swingWindow int
}

// NewPatternDetector creates a new pattern detector
func NewPatternDetector() *PatternDetector {
	return &PatternDetector{
		window:      60,
		swingWindow: 2,
	}
}

// swing is one local extreme inside the scanned tail
type swing struct {
	index int
	value float64
}

// Detect returns every formation found in the tail of the window
func (p *PatternDetector) Detect(data []types.OHLCV) []types.PatternMatch {
	if len(data) < 30 {
		return nil
	}
	tail := data
	if len(tail) > p.window {
		tail = tail[len(tail)-p.window:]
	}

	peaks, troughs := p.findSwings(tail)

	var matches []types.PatternMatch
	if match, ok := p.headAndShoulders(peaks, troughs); ok {
		matches = append(matches, match)
	}
	if match, ok := p.inverseHeadAndShoulders(peaks, troughs); ok {
		matches = append(matches, match)
	}
	if match, ok := p.doubleTop(peaks, troughs); ok {
		matches = append(matches, match)
	}
	if match, ok := p.doubleBottom(peaks, troughs); ok {
		matches = append(matches, match)
	}
	if match, ok := p.triangle(peaks, troughs); ok {
		matches = append(matches, match)
	}
	if match, ok := p.bullFlag(tail); ok {
		matches = append(matches, match)
	}
	return matches
}

// findSwings collects local close extrema over the swing window
func (p *PatternDetector) findSwings(data []types.OHLCV) ([]swing, []swing) {
	var peaks, troughs []swing
	for i := p.swingWindow; i < len(data)-p.swingWindow; i++ {
		isMax, isMin := true, true
		for j := i - p.swingWindow; j <= i+p.swingWindow; j++ {
			if data[j].Close > data[i].Close {
				isMax = false
			}
			if data[j].Close < data[i].Close {
				isMin = false
			}
		}
		if isMax {
			peaks = append(peaks, swing{index: i, value: data[i].Close})
		} else if isMin {
			troughs = append(troughs, swing{index: i, value: data[i].Close})
		}
	}
	return peaks, troughs
}

// headAndShoulders looks for three peaks with a dominant head and
// shoulders within 5% of each other
func (p *PatternDetector) headAndShoulders(peaks, troughs []swing) (types.PatternMatch, bool) {
	if len(peaks) < 3 {
		return types.PatternMatch{}, false
	}
	left := peaks[len(peaks)-3]
	head := peaks[len(peaks)-2]
	right := peaks[len(peaks)-1]

	if head.value <= left.value || head.value <= right.value || left.value <= 0 {
		return types.PatternMatch{}, false
	}
	shoulderDiff := math.Abs(left.value-right.value) / left.value
	if shoulderDiff > 0.05 {
		return types.PatternMatch{}, false
	}

	leftDip, ok := lowestBetween(troughs, left.index, head.index)
	if !ok {
		return types.PatternMatch{}, false
	}
	rightDip, ok := lowestBetween(troughs, head.index, right.index)
	if !ok {
		return types.PatternMatch{}, false
	}
	neckline := (leftDip + rightDip) / 2

	return types.PatternMatch{
		Type:       types.PatternHeadAndShoulders,
		Direction:  types.ActionSell,
		Confidence: 0.8 - 2*shoulderDiff,
		Target:     neckline - (head.value - neckline),
	}, true
}

// inverseHeadAndShoulders is the bullish mirror over troughs
func (p *PatternDetector) inverseHeadAndShoulders(peaks, troughs []swing) (types.PatternMatch, bool) {
	if len(troughs) < 3 {
		return types.PatternMatch{}, false
	}
	left := troughs[len(troughs)-3]
	head := troughs[len(troughs)-2]
	right := troughs[len(troughs)-1]

	if head.value >= left.value || head.value >= right.value || left.value <= 0 {
		return types.PatternMatch{}, false
	}
	shoulderDiff := math.Abs(left.value-right.value) / left.value
	if shoulderDiff > 0.05 {
		return types.PatternMatch{}, false
	}

	leftRally, ok := highestBetween(peaks, left.index, head.index)
	if !ok {
		return types.PatternMatch{}, false
	}
	rightRally, ok := highestBetween(peaks, head.index, right.index)
	if !ok {
		return types.PatternMatch{}, false
	}
	neckline := (leftRally + rightRally) / 2

	return types.PatternMatch{
		Type:       types.PatternInverseHeadAndShoulders,
		Direction:  types.ActionBuy,
		Confidence: 0.8 - 2*shoulderDiff,
		Target:     neckline + (neckline - head.value),
	}, true
}

// doubleTop looks for two peaks within 2% of each other
func (p *PatternDetector) doubleTop(peaks, troughs []swing) (types.PatternMatch, bool) {
	if len(peaks) < 2 {
		return types.PatternMatch{}, false
	}
	first := peaks[len(peaks)-2]
	second := peaks[len(peaks)-1]
	if first.value <= 0 || math.Abs(first.value-second.value)/first.value > 0.02 {
		return types.PatternMatch{}, false
	}

	neckline, ok := lowestBetween(troughs, first.index, second.index)
	if !ok {
		return types.PatternMatch{}, false
	}
	top := (first.value + second.value) / 2

	return types.PatternMatch{
		Type:       types.PatternDoubleTop,
		Direction:  types.ActionSell,
		Confidence: 0.75,
		Target:     neckline - (top - neckline),
	}, true
}

// doubleBottom is the bullish mirror over troughs
func (p *PatternDetector) doubleBottom(peaks, troughs []swing) (types.PatternMatch, bool) {
	if len(troughs) < 2 {
		return types.PatternMatch{}, false
	}
	first := troughs[len(troughs)-2]
	second := troughs[len(troughs)-1]
	if first.value <= 0 || math.Abs(first.value-second.value)/first.value > 0.02 {
		return types.PatternMatch{}, false
	}

	neckline, ok := highestBetween(peaks, first.index, second.index)
	if !ok {
		return types.PatternMatch{}, false
	}
	bottom := (first.value + second.value) / 2

	return types.PatternMatch{
		Type:       types.PatternDoubleBottom,
		Direction:  types.ActionBuy,
		Confidence: 0.75,
		Target:     neckline + (neckline - bottom),
	}, true
}

// triangle checks the last three peaks and troughs for a flat side
// against a converging one
func (p *PatternDetector) triangle(peaks, troughs []swing) (types.PatternMatch, bool) {
	if len(peaks) < 3 || len(troughs) < 3 {
		return types.PatternMatch{}, false
	}
	peakSlope := normalizedSlope(peaks[len(peaks)-3:])
	troughSlope := normalizedSlope(troughs[len(troughs)-3:])

	const flat = 0.0005
	const rising = 0.001

	if math.Abs(peakSlope) < flat && troughSlope > rising {
		top := peaks[len(peaks)-1].value
		return types.PatternMatch{
			Type:       types.PatternAscendingTriangle,
			Direction:  types.ActionBuy,
			Confidence: 0.70,
			Target:     top + (top - troughs[len(troughs)-3].value),
		}, true
	}
	if math.Abs(troughSlope) < flat && peakSlope < -rising {
		bottom := troughs[len(troughs)-1].value
		return types.PatternMatch{
			Type:       types.PatternDescendingTriangle,
			Direction:  types.ActionSell,
			Confidence: 0.65,
			Target:     bottom - (peaks[len(peaks)-3].value - bottom),
		}, true
	}
	return types.PatternMatch{}, false
}

// bullFlag checks for a sharp pole followed by a tight consolidation
func (p *PatternDetector) bullFlag(data []types.OHLCV) (types.PatternMatch, bool) {
	const poleBars = 15
	const flagBars = 10
	if len(data) < poleBars+flagBars {
		return types.PatternMatch{}, false
	}

	poleStart := data[len(data)-poleBars-flagBars].Close
	poleEnd := data[len(data)-flagBars-1].Close
	if poleStart <= 0 || (poleEnd-poleStart)/poleStart < 0.05 {
		return types.PatternMatch{}, false
	}

	flag := data[len(data)-flagBars:]
	low, high := flag[0].Close, flag[0].Close
	for _, candle := range flag {
		low = math.Min(low, candle.Close)
		high = math.Max(high, candle.Close)
	}
	lastClose := data[len(data)-1].Close
	if lastClose <= 0 || (high-low)/lastClose >= 0.03 {
		return types.PatternMatch{}, false
	}

	return types.PatternMatch{
		Type:       types.PatternBullFlag,
		Direction:  types.ActionBuy,
		Confidence: 0.75,
		Target:     lastClose + (poleEnd - poleStart),
	}, true
}

// lowestBetween returns the lowest trough strictly between two indexes
func lowestBetween(troughs []swing, from, to int) (float64, bool) {
	lowest, found := 0.0, false
	for _, t := range troughs {
		if t.index <= from || t.index >= to {
			continue
		}
		if !found || t.value < lowest {
			lowest = t.value
			found = true
		}
	}
	return lowest, found
}

// highestBetween returns the highest peak strictly between two indexes
func highestBetween(peaks []swing, from, to int) (float64, bool) {
	highest, found := 0.0, false
	for _, p := range peaks {
		if p.index <= from || p.index >= to {
			continue
		}
		if !found || p.value > highest {
			highest = p.value
			found = true
		}
	}
	return highest, found
}

// normalizedSlope fits the swing values per bar, relative to their mean
func normalizedSlope(swings []swing) float64 {
	if len(swings) < 2 {
		return 0
	}
	first := swings[0]
	last := swings[len(swings)-1]
	span := float64(last.index - first.index)
	if span == 0 {
		return 0
	}

	level := 0.0
	for _, s := range swings {
		level += s.value
	}
	level /= float64(len(swings))
	if level <= 0 {
		return 0
	}
	return (last.value - first.value) / span / level
}
