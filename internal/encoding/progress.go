package encoding

import (
	"regexp"
	"strconv"
	"time"
)

// Progress is one parsed encoder progress event. AvgFPS and ETA are only
// present on the encoder's extended progress lines; HasDetail reports
// whether they were seen.
type Progress struct {
	Percent   float64
	AvgFPS    float64
	ETA       time.Duration
	HasDetail bool
}

var (
	percentRe = regexp.MustCompile(`(\d+\.\d+)\s*%`)
	detailRe  = regexp.MustCompile(`avg\s+(\d+\.\d+).*ETA\s+(\d+)h(\d+)m(\d+)s`)
)

// ParseProgress extracts a progress event from one encoder output line.
// Lines without a percentage are not progress lines.
func ParseProgress(line string) (Progress, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return Progress{}, false
	}
	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Progress{}, false
	}
	progress := Progress{Percent: percent}

	if d := detailRe.FindStringSubmatch(line); d != nil {
		if fps, err := strconv.ParseFloat(d[1], 64); err == nil {
			progress.AvgFPS = fps
		}
		hours, _ := strconv.Atoi(d[2])
		minutes, _ := strconv.Atoi(d[3])
		seconds, _ := strconv.Atoi(d[4])
		progress.ETA = time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second
		progress.HasDetail = true
	}
	return progress, true
}
