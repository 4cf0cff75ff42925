package automatic

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// SeedFor derives the seed of game i of the named matchup. The same name
// and index always give the same seed.
func SeedFor(name string, i int) [32]byte {
	var seed [32]byte
	base := name + "/" + strconv.Itoa(i)
	for k := 0; k < 4; k++ {
		h := xxhash.Sum64([]byte(base + "/" + strconv.Itoa(k)))
		binary.LittleEndian.PutUint64(seed[k*8:], h)
	}
	return seed
}

// GenerateSeeds creates n fresh random seeds, to be saved and replayed.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// WriteSeeds writes one hex-encoded seed per line.
func WriteSeeds(w io.Writer, seeds [][32]byte) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("# game seeds, 32 bytes each, hex encoded\n"); err != nil {
		return err
	}
	for i, seed := range seeds {
		if _, err := bw.WriteString(hex.EncodeToString(seed[:]) + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadSeeds reads seeds written by WriteSeeds. Blank lines and lines
// starting with # are skipped.
func ReadSeeds(r io.Reader) ([][32]byte, error) {
	var seeds [][32]byte
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("invalid seed length at line %d: got %d bytes, expected 32", lineNum, len(decoded))
		}
		var seed [32]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seeds: %w", err)
	}
	return seeds, nil
}

func SaveSeeds(seeds [][32]byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer f.Close()
	return WriteSeeds(f, seeds)
}

func LoadSeeds(path string) ([][32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return ReadSeeds(f)
}
