package server

var ColourMethodForTest = colourMethod
