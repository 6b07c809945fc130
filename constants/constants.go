package constants

import (
	"os"
	"strconv"
)

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// Default engraving page width in font units, four reference bars wide.
const DefaultPageWidth = 12800.0

func GetPageWidth() float64 {
	raw := os.Getenv("PAGE_WIDTH")
	if raw == "" {
		return DefaultPageWidth
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || w <= 0 {
		return DefaultPageWidth
	}
	return w
}
