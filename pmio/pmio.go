// Package pmio reads and writes the persisted-state file grammar for a
// ParMesh's parallel communicators: one section per communicator kind
// (faces, vertices), order-free, terminated by the keyword "End". Both an
// ASCII and a little-endian binary encoding are supported; the binary
// encoding carries a leading endianness-probe word the way legacy mesh
// file formats do, instead of assuming the writer's and reader's byte
// order match.
package pmio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/yourusername/go-parmmg/parmesh"
	"github.com/yourusername/go-parmmg/pmerr"
)

// endianProbe is written as int32(1); a reader seeing 16777216 instead
// knows the file was written in the other byte order and must swap every
// subsequent word.
const endianProbe int32 = 1
const endianProbeSwapped int32 = 16777216

// Communicators is the parallel-communicator section of one persisted
// ParMesh: the face and node external communicators, keyed by neighbor
// color, in writer order.
type Communicators struct {
	Face []parmesh.ExtComm
	Node []parmesh.ExtComm
}

// WriteASCII writes c in the ASCII grammar: "ParallelTriangles <n>", then
// every comm's nitem, then every comm's color, then each comm's
// (local, global) pairs in turn; then the same for "ParallelVertices",
// terminated by "End".
func WriteASCII(w io.Writer, c Communicators) error {
	bw := bufio.NewWriter(w)

	if err := writeASCIISection(bw, "ParallelTriangles", c.Face); err != nil {
		return err
	}
	if err := writeASCIISection(bw, "ParallelVertices", c.Node); err != nil {
		return err
	}
	fmt.Fprintln(bw, "End")

	return bw.Flush()
}

func writeASCIISection(w *bufio.Writer, keyword string, comms []parmesh.ExtComm) error {
	fmt.Fprintf(w, "%s %d\n", keyword, len(comms))
	for _, c := range comms {
		fmt.Fprintf(w, "%d\n", len(c.IntCommIndex))
	}
	for _, c := range comms {
		fmt.Fprintf(w, "%d\n", c.ColorOut)
	}
	for _, c := range comms {
		for i := range c.IntCommIndex {
			global := int32(0)
			if i < len(c.ItoRecv) {
				global = c.ItoRecv[i]
			}
			fmt.Fprintf(w, "%d %d\n", c.IntCommIndex[i], global)
		}
	}
	return nil
}

// ReadASCII parses the grammar WriteASCII produces. Sections may appear in
// either order; parsing stops at the "End" keyword.
func ReadASCII(r io.Reader) (Communicators, error) {
	var out Communicators
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}
	nextInt := func() (int32, error) {
		tok, ok := next()
		if !ok {
			return 0, io.ErrUnexpectedEOF
		}
		var v int32
		if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
			return 0, err
		}
		return v, nil
	}

	for {
		tok, ok := next()
		if !ok || tok == "End" {
			break
		}
		switch tok {
		case "ParallelTriangles":
			comms, err := readASCIISection(nextInt)
			if err != nil {
				return out, pmerr.Wrap("pmio", err)
			}
			out.Face = comms
		case "ParallelVertices":
			comms, err := readASCIISection(nextInt)
			if err != nil {
				return out, pmerr.Wrap("pmio", err)
			}
			out.Node = comms
		default:
			return out, pmerr.Wrap("pmio", pmerr.ErrInputData)
		}
	}

	return out, nil
}

func readASCIISection(nextInt func() (int32, error)) ([]parmesh.ExtComm, error) {
	n, err := nextInt()
	if err != nil {
		return nil, err
	}

	comms := make([]parmesh.ExtComm, n)
	nitems := make([]int32, n)
	for i := range nitems {
		v, err := nextInt()
		if err != nil {
			return nil, err
		}
		nitems[i] = v
	}
	for i := range comms {
		v, err := nextInt()
		if err != nil {
			return nil, err
		}
		comms[i].ColorOut = v
	}
	for i := range comms {
		comms[i].IntCommIndex = make([]int32, nitems[i])
		comms[i].ItoRecv = make([]int32, nitems[i])
		for j := int32(0); j < nitems[i]; j++ {
			loc, err := nextInt()
			if err != nil {
				return nil, err
			}
			glo, err := nextInt()
			if err != nil {
				return nil, err
			}
			comms[i].IntCommIndex[j] = loc
			comms[i].ItoRecv[j] = glo
		}
	}
	return comms, nil
}

// WriteBinary writes c as little-endian 32-bit words: the endianness
// probe, then the same section layout as WriteASCII (counts, then per-comm
// item counts, then colors, then index pairs), for faces then nodes.
func WriteBinary(w io.Writer, c Communicators) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, endianProbe); err != nil {
		return err
	}
	if err := writeBinarySection(bw, c.Face); err != nil {
		return err
	}
	if err := writeBinarySection(bw, c.Node); err != nil {
		return err
	}
	return bw.Flush()
}

func writeBinarySection(w io.Writer, comms []parmesh.ExtComm) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(comms))); err != nil {
		return err
	}
	for _, c := range comms {
		if err := binary.Write(w, binary.LittleEndian, int32(len(c.IntCommIndex))); err != nil {
			return err
		}
	}
	for _, c := range comms {
		if err := binary.Write(w, binary.LittleEndian, c.ColorOut); err != nil {
			return err
		}
	}
	for _, c := range comms {
		for i := range c.IntCommIndex {
			global := int32(0)
			if i < len(c.ItoRecv) {
				global = c.ItoRecv[i]
			}
			if err := binary.Write(w, binary.LittleEndian, c.IntCommIndex[i]); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, global); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadBinary reads the format WriteBinary produces, detecting the writer's
// byte order from the leading probe word and swapping every subsequent word
// if it does not match this reader's.
func ReadBinary(r io.Reader) (Communicators, error) {
	var out Communicators
	var probe int32
	if err := binary.Read(r, binary.LittleEndian, &probe); err != nil {
		return out, pmerr.Wrap("pmio", err)
	}

	order := binary.ByteOrder(binary.LittleEndian)
	switch probe {
	case endianProbe:
	case endianProbeSwapped:
		order = binary.BigEndian
	default:
		return out, pmerr.Wrap("pmio", pmerr.ErrInputData)
	}

	face, err := readBinarySection(r, order)
	if err != nil {
		return out, pmerr.Wrap("pmio", err)
	}
	node, err := readBinarySection(r, order)
	if err != nil {
		return out, pmerr.Wrap("pmio", err)
	}
	out.Face, out.Node = face, node
	return out, nil
}

func readBinarySection(r io.Reader, order binary.ByteOrder) ([]parmesh.ExtComm, error) {
	var n int32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}

	comms := make([]parmesh.ExtComm, n)
	nitems := make([]int32, n)
	for i := range nitems {
		if err := binary.Read(r, order, &nitems[i]); err != nil {
			return nil, err
		}
	}
	for i := range comms {
		if err := binary.Read(r, order, &comms[i].ColorOut); err != nil {
			return nil, err
		}
	}
	for i := range comms {
		comms[i].IntCommIndex = make([]int32, nitems[i])
		comms[i].ItoRecv = make([]int32, nitems[i])
		for j := int32(0); j < nitems[i]; j++ {
			if err := binary.Read(r, order, &comms[i].IntCommIndex[j]); err != nil {
				return nil, err
			}
			if err := binary.Read(r, order, &comms[i].ItoRecv[j]); err != nil {
				return nil, err
			}
		}
	}
	return comms, nil
}
