package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Id lengths by use. Seed ids are long enough to be pasted into fixtures
// without collisions; request ids only need to be unique within a log window.
const (
	SeedIDSize     = 32
	ActivityIDSize = 16
	RequestIDSize  = 12
)

func NanoID() string {
	return NanoIDSize(SeedIDSize)
}

func NanoIDSize(size int) string {
	if size <= 0 {
		size = SeedIDSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
