package pipeline

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

const exampleSampleSize = 5

// sampleExamples streams a JSON array of reference QA pairs from disk and
// returns a uniform random sample of up to n entries using reservoir
// sampling, so large example files never load fully into memory.
func sampleExamples(path string, n int) ([]QAPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read examples file %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("examples file %s: expected a JSON array", path)
	}

	reservoir := make([]QAPair, 0, n)
	index := 0
	for dec.More() {
		var pair QAPair
		if err := dec.Decode(&pair); err != nil {
			return nil, fmt.Errorf("examples file %s entry %d: %w", path, index, err)
		}
		if index < n {
			reservoir = append(reservoir, pair)
		} else if j := rand.Intn(index + 1); j < n {
			reservoir[j] = pair
		}
		index++
	}

	return reservoir, nil
}
