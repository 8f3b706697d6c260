package impl

import (
	"encoding/binary"
	"sync"

	"github.com/mimoo/StrobeGo/strobe"
)

const (
	transcriptSecurity = 128
	transcriptProtocol = "sigvss transcript v1"
	domainSeparator    = "dom-sep"
	digestLabel        = "digest"
)

// Transcript absorbs every message of a run. Two runs exchanging the same
// messages in the same order have the same digest.
type Transcript struct {
	sync.Mutex
	strobe strobe.Strobe
}

// NewTranscript returns a transcript bound to label.
func NewTranscript(label string) *Transcript {
	tr := &Transcript{
		strobe: strobe.InitStrobe(transcriptProtocol, transcriptSecurity),
	}
	tr.AppendMessage([]byte(domainSeparator), []byte(label))
	return tr
}

// AppendMessage absorbs message under label. The label is framed with the
// message length.
func (tr *Transcript) AppendMessage(label, message []byte) {
	tr.Lock()
	defer tr.Unlock()

	sizeBuffer := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBuffer, uint32(len(message)))

	meta := make([]byte, 0, len(label)+len(sizeBuffer))
	meta = append(meta, label...)
	meta = append(meta, sizeBuffer...)

	tr.strobe.AD(true, meta)
	tr.strobe.AD(false, message)
}

// Digest returns outputLen bytes derived from everything absorbed so far.
// The transcript can still absorb messages afterwards.
func (tr *Transcript) Digest(outputLen int) []byte {
	tr.Lock()
	defer tr.Unlock()

	sizeBuffer := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBuffer, uint32(outputLen))

	meta := make([]byte, 0, len(digestLabel)+len(sizeBuffer))
	meta = append(meta, digestLabel...)
	meta = append(meta, sizeBuffer...)

	fork := tr.strobe.Clone()
	fork.AD(true, meta)
	return fork.PRF(outputLen)
}
