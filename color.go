package main

import "image/color"

var setColors = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //975f91
}

func setColor(i int) color.NRGBA {
	return setColors[i%len(setColors)]
}

// segmentColor lightens a set's color once per stack level so the
// components of one bar stay distinguishable.
func segmentColor(c color.NRGBA, level int) color.NRGBA {
	for ; level > 0; level-- {
		c.R += (0xff - c.R) / 3
		c.G += (0xff - c.G) / 3
		c.B += (0xff - c.B) / 3
	}
	return c
}
