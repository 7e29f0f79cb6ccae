package numbers

// primeSet is a growable, sorted set of discovered primes, reused across
// the classify calls of one resolve call (each ResolveStartingVertices or
// ResolveNeighbors call builds a fresh one), so classifying a run of
// numbers doesn't repeat trial division from scratch. Grounded on numbers_interpreter.rs's
// BTreeSet<i64>-based sieve (generate_primes_up_to/get_factors).
type primeSet struct {
	values []int64 // sorted ascending, starts seeded with 2 and 3
}

func newPrimeSet() *primeSet {
	return &primeSet{values: []int64{2, 3}}
}

// generateUpTo extends p with every prime up to and including maxBound,
// trial-dividing candidates against primes already known (matching the
// original's incremental sieve rather than a fixed-size precomputation).
func (p *primeSet) generateUpTo(maxBound int64) {
	if maxBound < 2 {
		return
	}
	current := p.values[len(p.values)-1]
	for current < maxBound {
		current += 2
		isPrime := true
		for _, prime := range p.values {
			if current%prime == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			p.values = append(p.values, current)
		}
	}
}

// factors returns every prime factor of num, ascending. num < 2 (other
// than via the sign-flip below) has none.
func (p *primeSet) factors(num int64) []int64 {
	switch {
	case num == 0 || num == 1:
		return nil
	case num < 0:
		return append(p.factors(-num), -1)
	default:
		var out []int64
		for _, prime := range p.values {
			if num%prime == 0 {
				out = append(out, prime)
			}
		}
		return out
	}
}

// classify builds the Vertex for num, growing p's sieve as needed.
func (p *primeSet) classify(num int64) Vertex {
	if num >= 2 {
		p.generateUpTo(num)
	}
	factors := p.factors(num)
	switch {
	case len(factors) == 0:
		return Vertex{Kind: KindNeither, Value: num}
	case len(factors) == 1 && factors[0] == num:
		return Vertex{Kind: KindPrime, Value: num}
	default:
		return Vertex{Kind: KindComposite, Value: num, Factors: factors}
	}
}
