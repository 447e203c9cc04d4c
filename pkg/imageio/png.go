package imageio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"hash/crc32"
	"io"

	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// pngSignature starts every PNG file
var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

const (
	// DefaultMaxChunkSize bounds the payload of a single IDAT chunk
	DefaultMaxChunkSize = 64 * 1024

	// maxStoredBlock is the largest payload a stored deflate block can carry
	maxStoredBlock = 65535

	colorTypeRGB = 2
	filterNone   = 0
)

// Encoder writes framebuffers as uncompressed PNG files: 8-bit RGB, no
// filtering, and image data carried in stored (type 00) deflate blocks.
type Encoder struct {
	// MaxChunkSize limits the bytes per IDAT chunk; values <= 0 use DefaultMaxChunkSize
	MaxChunkSize int
}

// maxDimension is the largest width or height a PNG header can carry
const maxDimension = 1<<31 - 1

// Encode writes fb to w as a PNG using the default encoder
func Encode(w io.Writer, fb *framebuffer.Framebuffer) error {
	return (&Encoder{}).Encode(w, fb)
}

// Encode writes fb to w as a PNG
func (e *Encoder) Encode(w io.Writer, fb *framebuffer.Framebuffer) error {
	if fb.Width <= 0 || fb.Height <= 0 || fb.Width > maxDimension || fb.Height > maxDimension {
		return fmt.Errorf("invalid image dimensions %dx%d", fb.Width, fb.Height)
	}
	if len(fb.Pixels) != fb.Width*fb.Height {
		return fmt.Errorf("framebuffer holds %d pixels, want %dx%d", len(fb.Pixels), fb.Width, fb.Height)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(pngSignature[:]); err != nil {
		return fmt.Errorf("failed to write PNG signature: %w", err)
	}

	if err := writeChunk(bw, "IHDR", ihdr(fb.Width, fb.Height)); err != nil {
		return err
	}

	stream := zlibStored(scanlines(fb))
	chunkSize := e.MaxChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultMaxChunkSize
	}
	for len(stream) > 0 {
		n := min(chunkSize, len(stream))
		if err := writeChunk(bw, "IDAT", stream[:n]); err != nil {
			return err
		}
		stream = stream[n:]
	}

	if err := writeChunk(bw, "IEND", nil); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PNG data: %w", err)
	}
	return nil
}

// ihdr builds the 13-byte header chunk payload
func ihdr(width, height int) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], uint32(width))
	binary.BigEndian.PutUint32(data[4:8], uint32(height))
	data[8] = 8 // bit depth
	data[9] = colorTypeRGB
	data[10] = 0 // compression: deflate
	data[11] = 0 // filter method
	data[12] = 0 // no interlace
	return data
}

// scanlines serializes the framebuffer top row first, each row prefixed by its filter byte
func scanlines(fb *framebuffer.Framebuffer) []byte {
	stride := 1 + 3*fb.Width
	raw := make([]byte, 0, stride*fb.Height)
	for y := 0; y < fb.Height; y++ {
		raw = append(raw, filterNone)
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			raw = append(raw, r, g, b)
		}
	}
	return raw
}

// writeChunk frames data as a PNG chunk: length, type, data, then the
// CRC-32 of type and data
func writeChunk(w io.Writer, chunkType string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(data)))
	copy(header[4:8], chunkType)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], ChunkCRC(chunkType, data))

	for _, part := range [][]byte{header[:], data, footer[:]} {
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("failed to write %s chunk: %w", chunkType, err)
		}
	}
	return nil
}

// ChunkCRC returns the CRC-32 (IEEE) of a chunk's type and data
func ChunkCRC(chunkType string, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	return crc.Sum32()
}

// zlibStored wraps payload in a zlib stream made of stored deflate blocks.
// An empty payload still produces a single final empty block.
func zlibStored(payload []byte) []byte {
	blocks := max(1, (len(payload)+maxStoredBlock-1)/maxStoredBlock)

	var buf bytes.Buffer
	buf.Grow(2 + len(payload) + 5*blocks + 4)

	// CMF 0x78: deflate with a 32K window; FLG 0x01 makes CMF<<8|FLG divisible by 31
	buf.Write([]byte{0x78, 0x01})

	for i := 0; i < blocks; i++ {
		start := i * maxStoredBlock
		end := min(start+maxStoredBlock, len(payload))
		block := payload[start:end]

		final := byte(0)
		if i == blocks-1 {
			final = 1
		}

		var header [5]byte
		header[0] = final // BFINAL, BTYPE=00
		binary.LittleEndian.PutUint16(header[1:3], uint16(len(block)))
		binary.LittleEndian.PutUint16(header[3:5], ^uint16(len(block)))
		buf.Write(header[:])
		buf.Write(block)
	}

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], adler32.Checksum(payload))
	buf.Write(trailer[:])

	return buf.Bytes()
}
