package colors

// package colors contains functions to quickly and easily generate flightpath.Color instances by name (i.e. "White()", "SkyBlue()", "Pink()", etc).

import "github.com/solarlune/flightpath"

// Transparent generates a flightpath.Color instance of the provided name.
func Transparent() flightpath.Color {
	return flightpath.NewColor(0, 0, 0, 0)
}

// White generates a flightpath.Color instance of the provided name.
func White() flightpath.Color {
	return flightpath.NewColor(1, 1, 1, 1)
}

// Black generates a flightpath.Color instance of the provided name.
func Black() flightpath.Color {
	return flightpath.NewColor(0, 0, 0, 1)
}

// Gray generates a flightpath.Color instance of the provided name.
func Gray() flightpath.Color {
	return flightpath.NewColor(0.5, 0.5, 0.5, 1)
}

// DarkGray generates a flightpath.Color instance of the provided name.
func DarkGray() flightpath.Color {
	return flightpath.NewColor(0.2, 0.2, 0.2, 1)
}

// Red generates a flightpath.Color instance of the provided name.
func Red() flightpath.Color {
	return flightpath.NewColor(1, 0, 0, 1)
}

// Orange generates a flightpath.Color instance of the provided name.
func Orange() flightpath.Color {
	return flightpath.NewColor(1, 0.5, 0, 1)
}

// Yellow generates a flightpath.Color instance of the provided name.
func Yellow() flightpath.Color {
	return flightpath.NewColor(1, 1, 0, 1)
}

// Green generates a flightpath.Color instance of the provided name.
func Green() flightpath.Color {
	return flightpath.NewColor(0, 1, 0, 1)
}

// SkyBlue is the corridor scene's sky, #87CEEB.
func SkyBlue() flightpath.Color {
	return flightpath.NewColor(0x87/255.0, 0xce/255.0, 0xeb/255.0, 1)
}

// Turquoise generates a flightpath.Color instance of the provided name.
func Turquoise() flightpath.Color {
	return flightpath.NewColor(0, 1, 1, 1)
}

// Blue generates a flightpath.Color instance of the provided name.
func Blue() flightpath.Color {
	return flightpath.NewColor(0, 0, 1, 1)
}

// Pink is the garden scene's end colour, #ff9cf7.
func Pink() flightpath.Color {
	return flightpath.NewColor(1, 0x9c/255.0, 0xf7/255.0, 1)
}
