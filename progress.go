package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// progressReader logs upload progress every time another step percent of total is read.
type progressReader struct {
	reader   io.Reader
	name     string
	total    int64
	read     int64
	step     int64
	reported int64
}

func newProgressReader(reader io.Reader, name string, total int64) *progressReader {
	return &progressReader{reader: reader, name: name, total: total, step: 10}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	p.read += int64(n)
	if p.total > 0 {
		percent := p.read * 100 / p.total
		if percent >= p.reported+p.step || (percent == 100 && p.reported < 100) {
			p.reported = percent - percent%p.step
			if percent == 100 {
				p.reported = 100
			}
			log.Debug(fmt.Sprintf("%s  %s / %s  (%d%%)", p.name,
				humanize.Bytes(uint64(p.read)), humanize.Bytes(uint64(p.total)), percent))
		}
	}
	return n, err
}
