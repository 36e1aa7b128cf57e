package grid

// octaveSemitones is the number of semitone steps NOTE advances per octave.
const octaveSemitones = 12

// majorScale holds the semitone offsets of the major scale, indexed by
// scale degree, for NOTE's index-to-pitch mapping.
var majorScale = [7]int32{0, 2, 4, 5, 7, 9, 11}

// Step advances m by one beat, appending every read and write an operator
// performs to g. g is reset at the start of the call; callers that want a
// persistent history must copy g.Edges out before the next Step.
//
// Evaluation proceeds in English reading order (row-major, top to bottom,
// left to right) over the state of the map as it stood at the start of the
// beat plus whatever earlier cells in the same sweep have already written —
// operators read the live map, not a snapshot, so order matters.
func Step(m *Model, g *Graph) {
	g.reset()

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			m.Map[y][x].Pulse = false
			if m.Map[y][x].Tag == TagBang {
				m.Map[y][x] = None
			}
		}
	}

	for y := int32(0); y < Height; y++ {
		for x := int32(0); x < Width; x++ {
			origin := Point{X: x, Y: y}
			value := m.At(origin)

			var points [directionCardinal]Point
			var values [directionCardinal]Value
			bang := false
			for d := Direction(0); d < directionCardinal; d++ {
				points[d] = origin.Add(UnitVector(d))
				values[d] = m.At(points[d])
				bang = bang || values[d].Tag == TagBang
			}

			if !value.Powered && bang {
				m.Map[y][x].Pulse = true
			}

			ps := points[South]
			ve := values[East]
			vw := values[West]

			if !value.Powered && !bang {
				continue
			}

			switch value.Tag {

			case TagAdd:
				augend := recordRead(m, g, origin, Point{X: -1}, value.Tag, "ADDEND")
				addend := recordRead(m, g, origin, Point{X: 1}, value.Tag, "ADDEND")
				output := (readLiteral(augend, 0) + readLiteral(addend, 0)) % Radix
				recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(output))

			case TagSub:
				minuend := recordRead(m, g, origin, Point{X: -1}, value.Tag, "MINUEND")
				subtrahend := recordRead(m, g, origin, Point{X: 1}, value.Tag, "SUBTRAHEND")
				difference := readLiteral(minuend, 0) - readLiteral(subtrahend, 0)
				if difference < 0 {
					difference += Radix
				}
				recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(difference))

			case TagMul:
				multiplier := recordRead(m, g, origin, Point{X: -1}, value.Tag, "MULTIPLIER")
				multiplicand := recordRead(m, g, origin, Point{X: 1}, value.Tag, "MULTIPLICAND")
				output := (readLiteral(multiplier, 0) * readLiteral(multiplicand, 0)) % Radix
				recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(output))

			case TagDiv:
				dividend := recordRead(m, g, origin, Point{X: -1}, value.Tag, "DIVIDEND")
				divisor := recordRead(m, g, origin, Point{X: 1}, value.Tag, "DIVISOR")
				divisorLiteral := readLiteral(divisor, 0)
				if divisorLiteral != 0 {
					quotient := readLiteral(dividend, 0) / divisorLiteral
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(quotient))
				}

			case TagEqual:
				lhs := recordRead(m, g, origin, Point{X: -1}, value.Tag, "LEFT HAND SIDE")
				rhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "RIGHT HAND SIDE")
				if lhs.Tag == TagLiteral && rhs.Tag == TagLiteral {
					if ve.Literal == vw.Literal {
						recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Bang)
					}
				}

			case TagGreater:
				lhs := recordRead(m, g, origin, Point{X: -1}, value.Tag, "LEFT HAND SIDE")
				rhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "RIGHT HAND SIDE")
				if lhs.Tag == TagLiteral && rhs.Tag == TagLiteral {
					if lhs.Literal > rhs.Literal {
						recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Bang)
					}
				}

			case TagLesser:
				lhs := recordRead(m, g, origin, Point{X: -1}, value.Tag, "LEFT HAND SIDE")
				rhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "RIGHT HAND SIDE")
				if lhs.Tag == TagLiteral && rhs.Tag == TagLiteral {
					if lhs.Literal < rhs.Literal {
						recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Bang)
					}
				}

			case TagAnd:
				lhs := recordRead(m, g, origin, Point{X: -1}, value.Tag, "LEFT CONJUNCT")
				rhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "RIGHT CONJUNCT")
				if lhs.Tag == TagLiteral && rhs.Tag == TagLiteral {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(lhs.Literal&rhs.Literal))
				} else if ve.Tag != TagNone && vw.Tag != TagNone {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Bang)
				}

			case TagOr:
				lhs := recordRead(m, g, origin, Point{X: -1}, value.Tag, "LEFT DISJUNCT")
				rhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "RIGHT DISJUNCT")
				if lhs.Tag == TagLiteral && rhs.Tag == TagLiteral {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(lhs.Literal|rhs.Literal))
				} else if ve.Tag != TagNone || vw.Tag != TagNone {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Bang)
				}

			case TagAlter:
				lhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "MINIMUM")
				rhs := recordRead(m, g, origin, Point{X: 2}, value.Tag, "MAXIMUM")
				t := recordRead(m, g, origin, Point{X: -1}, value.Tag, "TIME")
				lhsv := readLiteral(lhs, 0)
				rhsv := readLiteral(rhs, 0)
				tv := readLiteral(t, 0)
				scale := int32(Radix - 1)
				output := ((scale-tv)*lhsv + tv*rhsv) / scale
				recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(output))

			case TagBottom:
				lhs := recordRead(m, g, origin, Point{X: -1}, value.Tag, "LEFT")
				rhs := recordRead(m, g, origin, Point{X: 1}, value.Tag, "RIGHT")
				if lhs.Tag == TagLiteral && rhs.Tag == TagLiteral {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(min32(lhs.Literal, rhs.Literal)))
				}

			case TagClock:
				rateValue := recordRead(m, g, origin, Point{X: -1}, value.Tag, "RATE")
				modValue := recordRead(m, g, origin, Point{X: 1}, value.Tag, "MODULUS")
				rate := int64(readLiteral(rateValue, 0)) + 1
				if int64(m.Frame)%rate == 0 {
					mod := mapZero(modValue, Radix)
					output := int32((int64(m.Frame) / rate) % int64(mod))
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(output))
				}

			case TagDelay:
				rateValue := recordRead(m, g, origin, Point{X: -1}, value.Tag, "RATE")
				modValue := recordRead(m, g, origin, Point{X: 1}, value.Tag, "MODULUS")
				rate := int64(readLiteral(rateValue, 0)) + 1
				mod := mapZero(modValue, Radix)
				output := (int64(m.Frame) / rate) % int64(mod)
				if output == 0 {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Bang)
				}

			case TagHop:
				input := recordRead(m, g, origin, Point{X: -1}, value.Tag, "INPUT")
				recordWrite(m, g, origin, Point{X: 1}, value.Tag, "OUTPUT", input)

			case TagInterfere:
				xv := recordRead(m, g, origin, Point{X: -2}, value.Tag, "X COORDINATE")
				yv := recordRead(m, g, origin, Point{X: -1}, value.Tag, "Y COORDINATE")
				iv := recordRead(m, g, origin, Point{X: 1}, value.Tag, "VALUE")
				delta := Point{X: readLiteral(xv, 0), Y: readLiteral(yv, 0) + 1}
				recordWrite(m, g, origin, delta, value.Tag, "OUTPUT", iv)

			case TagJump:
				input := recordRead(m, g, origin, Point{Y: -1}, value.Tag, "INPUT")
				recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", input)

			case TagLoad:
				reg := recordRead(m, g, origin, Point{X: -1}, value.Tag, "REGISTER")
				if reg.Tag == TagLiteral {
					v := m.Registers[reg.Literal]
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", v)
				}

			case TagMultiplex:
				xv := recordRead(m, g, origin, Point{X: 1}, value.Tag, "X COORDINATE")
				yv := recordRead(m, g, origin, Point{X: 2}, value.Tag, "Y COORDINATE")
				delta := Point{X: -(readLiteral(xv, 0) + 1), Y: -readLiteral(yv, 0)}
				iv := recordRead(m, g, origin, delta, value.Tag, "VALUE")
				recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", iv)

			case TagNote:
				index := recordRead(m, g, origin, Point{X: -1}, value.Tag, "NOTE INDEX")
				if index.Tag == TagLiteral {
					octave := index.Literal / int32(len(majorScale))
					note := index.Literal % int32(len(majorScale))
					pitch := (octaveSemitones*octave + majorScale[note]) % Radix
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(pitch))
				} else {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", None)
				}

			case TagOddment:
				dividend := recordRead(m, g, origin, Point{X: -1}, value.Tag, "DIVIDEND")
				divisor := recordRead(m, g, origin, Point{X: 1}, value.Tag, "DIVISOR")
				if dividend.Tag == TagLiteral && divisor.Tag == TagLiteral {
					d := divisor.Literal
					if d == 0 {
						d = Radix
					}
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(dividend.Literal%d))
				} else {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", None)
				}

			case TagQuote:
				index := recordRead(m, g, origin, Point{X: -1}, value.Tag, "INDEX")
				if index.Tag == TagLiteral {
					outputTag := TagBang + Tag(index.Literal)
					if outputTag >= 0 && outputTag < tagCardinal && quotable[outputTag] {
						recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Value{Tag: outputTag, Powered: true})
					} else {
						recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", None)
					}
				} else {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", None)
				}

			case TagRandom:
				rate := recordRead(m, g, origin, Point{X: -1}, value.Tag, "RATE")
				mod := recordRead(m, g, origin, Point{X: 1}, value.Tag, "MODULUS")
				if rate.Tag == TagLiteral && mod.Tag == TagLiteral {
					r := rate.Literal
					if r == 0 {
						r = Radix
					}
					if int64(m.Frame)%int64(r) == 0 {
						d := mod.Literal
						if d == 0 {
							d = Radix
						}
						output := int32(m.RNG.Next() % uint32(d))
						recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", Literal(output))
					}
				} else {
					recordWrite(m, g, origin, Point{Y: 1}, value.Tag, "OUTPUT", None)
				}

			case TagStore:
				if vw.Tag == TagLiteral {
					m.Registers[vw.Literal] = ve
				}

			case TagTop:
				lhs := readLiteral(vw, 0)
				rhs := readLiteral(ve, 0)
				m.Set(ps, Literal(max32(lhs, rhs)))
			}
		}
	}

	m.Frame++
}

func recordRead(m *Model, g *Graph, origin, offset Point, cause Tag, attribute string) Value {
	target := origin.Add(offset)
	input := m.At(target)
	g.record(GraphEdge{Tag: EdgeInput, Origin: origin, Target: target, Cause: cause, Attribute: attribute})
	return input
}

func recordWrite(m *Model, g *Graph, origin, offset Point, cause Tag, attribute string, v Value) {
	target := origin.Add(offset)
	m.Set(target, v)
	g.record(GraphEdge{Tag: EdgeOutput, Origin: origin, Target: target, Cause: cause, Attribute: attribute})
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
