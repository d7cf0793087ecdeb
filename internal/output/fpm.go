// fpm.go - Rohbild-Format (.fpm): vier float32 pro Pixel
//
// Little-endian: u32 width, u32 height, dann width*height Records aus
// (r, g, b, weight) als float32, row-major, ohne Header-Magic. Kein
// Gamma, keine Normalisierung: der unveraenderte Akkumulator-Zustand
// der ImagePlane, damit ein unterbrochener Render spaeter aus der Mitte
// heraus neu encodiert werden kann.
package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/mantaray/manta/internal/imaging"
)

// WriteFPM writes plane's raw (r, g, b, weight) accumulator state to w
// in the .fpm wire format.
func WriteFPM(w io.Writer, plane *imaging.ImagePlane) error {
	bw := bufio.NewWriter(w)

	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(plane.Width))
	binary.LittleEndian.PutUint32(header[4:8], uint32(plane.Height))
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("fpm: write header: %w", err)
	}

	var rec [16]byte
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			v := plane.At(x, y)
			binary.LittleEndian.PutUint32(rec[0:4], floatBits(v.X))
			binary.LittleEndian.PutUint32(rec[4:8], floatBits(v.Y))
			binary.LittleEndian.PutUint32(rec[8:12], floatBits(v.Z))
			binary.LittleEndian.PutUint32(rec[12:16], floatBits(v.W))
			if _, err := bw.Write(rec[:]); err != nil {
				return fmt.Errorf("fpm: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	return bw.Flush()
}

// WriteFPMFile is a convenience wrapper creating path and writing
// plane's raw accumulator state into it.
func WriteFPMFile(path string, plane *imaging.ImagePlane) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fpm: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteFPM(f, plane)
}

// ReadFPM reads back a .fpm stream into a width, height and flat
// (r, g, b, weight) record slice, for re-encoding a partially rendered
// image after a crash.
func ReadFPM(r io.Reader) (width, height int, records []FPMRecord, err error) {
	br := bufio.NewReader(r)

	var header [8]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return 0, 0, nil, fmt.Errorf("fpm: read header: %w", err)
	}
	width = int(binary.LittleEndian.Uint32(header[0:4]))
	height = int(binary.LittleEndian.Uint32(header[4:8]))

	records = make([]FPMRecord, width*height)
	var rec [16]byte
	for i := range records {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return 0, 0, nil, fmt.Errorf("fpm: read pixel %d: %w", i, err)
		}
		records[i] = FPMRecord{
			R:      bitsFloat(binary.LittleEndian.Uint32(rec[0:4])),
			G:      bitsFloat(binary.LittleEndian.Uint32(rec[4:8])),
			B:      bitsFloat(binary.LittleEndian.Uint32(rec[8:12])),
			Weight: bitsFloat(binary.LittleEndian.Uint32(rec[12:16])),
		}
	}
	return width, height, records, nil
}

// FPMRecord is a single decoded .fpm pixel record.
type FPMRecord struct {
	R, G, B, Weight float32
}
