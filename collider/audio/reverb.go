package audio

import "math"

// reverbTapCount is the number of delay lines the FDN-style reverberator
// mixes, each independently modulated to avoid metallic periodicity.
const reverbTapCount = 8

const (
	fracScale = 0x10000000
	fracMask  = 0xFFFFFFF
	fracBits  = 28
)

// reverbParam is one tap's {delay, drift, randfreq, seed} tuple, carried
// verbatim from the reference reverberator's parameter table rather than
// re-derived, since nothing in this project specifies how the table itself
// should be chosen.
type reverbParam struct {
	delay    int32 // samples, at 44.1kHz reference rate
	drift    int32 // tenths of a millisecond
	randFreq int32 // hertz * 1000
	seed     int32
}

var reverbParams = [reverbTapCount]reverbParam{
	{0x09a9, 0x0a, 0xc1c, 0x07ae},
	{0x0acf, 0x0b, 0xdac, 0x7333},
	{0x0c91, 0x11, 0x456, 0x5999},
	{0x0de5, 0x06, 0xf85, 0x2666},
	{0x0f43, 0x0a, 0x925, 0x50a3},
	{0x101f, 0x0b, 0x769, 0x5999},
	{0x085f, 0x11, 0x37b, 0x7333},
	{0x078d, 0x06, 0xc95, 0x3851},
}

func getDelaySize(p reverbParam, sampleRate int) int {
	sz := float64(p.delay)/44100.0 + (float64(p.drift)*0.0001)*1.125
	return int(math.Floor(16 + sz*float64(sampleRate)))
}

// reverbDelay is one modulated delay line: a circular buffer read with
// cubic interpolation at a slowly drifting fractional position, re-aimed at
// a freshly randomized target every maxcount samples.
type reverbDelay struct {
	buf  []float32
	wpos int32

	irpos int32
	frpos int32

	rng      int32
	inc      int32
	counter  int32
	maxCount int32

	dels  float32
	drift float32
	y     float32
}

func (d *reverbDelay) init(p reverbParam, sampleRate int) {
	size := getDelaySize(p, sampleRate)
	d.buf = make([]float32, size)
	d.wpos = 0
	d.rng = p.seed

	readpos := float64(p.delay) / 44100.0
	readpos += float64(d.rng) * (float64(p.drift) * 0.0001) / 32768.0
	readpos = float64(size) - readpos*float64(sampleRate)
	d.irpos = int32(math.Floor(readpos))
	d.frpos = int32(math.Floor((readpos - float64(d.irpos)) * fracScale))

	d.inc = 0
	d.counter = 0
	d.maxCount = int32(math.Floor(float64(sampleRate) / (float64(p.randFreq) * 0.001)))
	d.dels = float32(p.delay) / 44100.0
	d.drift = float32(p.drift)

	d.generateNextLine(sampleRate)
	d.y = 0
}

func (d *reverbDelay) generateNextLine(sampleRate int) {
	if d.rng < 0 {
		d.rng += 0x10000
	}
	d.rng = 1 + d.rng*0x3d09
	d.rng &= 0xFFFF
	if d.rng >= 0x8000 {
		d.rng -= 0x10000
	}
	d.counter = d.maxCount

	sz := int32(len(d.buf))
	curdel := float64(d.wpos) - (float64(d.irpos) + float64(d.frpos)/fracScale)
	for curdel < 0 {
		curdel += float64(sz)
	}
	curdel /= float64(sampleRate)

	nxtdel := float64(d.rng)*(float64(d.drift)*0.0001)/32768.0 + float64(d.dels)
	inc := ((curdel - nxtdel) / float64(d.counter)) * float64(sampleRate)
	inc++
	d.inc = int32(math.Floor(inc * fracScale))
}

func (d *reverbDelay) compute(in, feedback, filt float32, sampleRate int) float32 {
	sz := int32(len(d.buf))

	d.buf[d.wpos] = in - d.y
	d.wpos++
	if d.wpos >= sz {
		d.wpos -= sz
	}

	if d.frpos >= fracScale {
		d.irpos += d.frpos >> fracBits
		d.frpos &= fracMask
	}
	if d.irpos >= sz {
		d.irpos -= sz
	}

	fracNorm := float32(d.frpos) / fracScale

	dCoef := (fracNorm*fracNorm - 1) / 6.0
	tmp0 := (fracNorm + 1.0) * 0.5
	tmp1 := 3.0 * dCoef
	a := tmp0 - 1.0 - dCoef
	c := tmp0 - tmp1
	b := tmp1 - fracNorm

	var s [4]float32
	n := d.irpos
	if n > 0 && n < sz-2 {
		s[0] = d.buf[n-1]
		s[1] = d.buf[n]
		s[2] = d.buf[n+1]
		s[3] = d.buf[n+2]
	} else {
		n--
		if n < 0 {
			n += sz
		}
		s[0] = d.buf[n]
		for k := 0; k < 3; k++ {
			n++
			if n >= sz {
				n -= sz
			}
			s[k+1] = d.buf[n]
		}
	}

	out := (a*s[0]+b*s[1]+c*s[2]+dCoef*s[3])*fracNorm + s[1]
	d.frpos += d.inc
	out *= feedback
	out += (d.y - out) * filt
	d.y = out

	d.counter--
	if d.counter <= 0 {
		d.generateNextLine(sampleRate)
	}
	return out
}

// Reverb is the 8-tap FDN-style reverberator that colors the mixer's wet
// signal: each tap feeds back a fraction of the prior output summed across
// all taps, with a shared one-pole lowpass shaping the feedback path.
type Reverb struct {
	sampleRate int
	size       float32
	cutoff     float32
	prevCutoff float32
	filt       float32
	delays     [reverbTapCount]reverbDelay
}

// NewReverb constructs a reverberator at the given sample rate with the
// reference default size/cutoff.
func NewReverb(sampleRate int) *Reverb {
	r := &Reverb{sampleRate: sampleRate, prevCutoff: -1, filt: 1.0}
	for i := range r.delays {
		r.delays[i].init(reverbParams[i], sampleRate)
	}
	r.SetSize(0.93)
	r.SetCutoff(10000.0)
	return r
}

// SetSize adjusts the feedback coefficient shared by every tap.
func (r *Reverb) SetSize(size float32) { r.size = size }

// SetCutoff adjusts the feedback lowpass's corner frequency in Hz.
func (r *Reverb) SetCutoff(cutoff float32) { r.cutoff = cutoff }

// Tick processes one stereo input frame and returns the wet stereo output.
func (r *Reverb) Tick(inL, inR float32) (float32, float32) {
	if r.prevCutoff != r.cutoff {
		r.prevCutoff = r.cutoff
		filt := 2.0 - float32(math.Cos(float64(r.cutoff)*2*math.Pi/float64(r.sampleRate)))
		r.filt = filt - float32(math.Sqrt(float64(filt*filt-1.0)))
	}

	var jp float32
	for i := range r.delays {
		jp += r.delays[i].y
	}
	jp *= 0.25

	inL += jp
	inR += jp

	var lsum, rsum float32
	for i := range r.delays {
		if i&1 == 1 {
			rsum += r.delays[i].compute(inR, r.size, r.filt, r.sampleRate)
		} else {
			lsum += r.delays[i].compute(inL, r.size, r.filt, r.sampleRate)
		}
	}

	return lsum * 0.35, rsum * 0.35
}
