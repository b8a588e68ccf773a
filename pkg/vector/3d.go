package vector

import (
	"math"
)

const (
	X = iota
	Y
	Z
)

// V3D is a point or direction in the drone's frame, centimetres unless noted otherwise.
type V3D [3]float64

func (v V3D) Scale(factor float64) (scaled V3D) {
	for i := range v {
		scaled[i] = v[i] * factor
	}
	return
}

func (v V3D) Sub(other V3D) (sub V3D) {
	for i := range v {
		sub[i] = v[i] - other[i]
	}
	return
}

func (v V3D) Add(other V3D) (sum V3D) {
	for i := range v {
		sum[i] = v[i] + other[i]
	}
	return sum
}

func (v V3D) Distance(other V3D) (distance float64) {
	return v.Sub(other).Length()
}

func (v V3D) Length() float64 {
	return math.Sqrt(v[X]*v[X] + v[Y]*v[Y] + v[Z]*v[Z])
}

// Round rounds each component to the nearest integer.
func (v V3D) Round() (rounded V3D) {
	for i := range v {
		rounded[i] = math.Round(v[i])
	}
	return
}

func (v V3D) X() float64 {
	return v[X]
}

func (v V3D) Y() float64 {
	return v[Y]
}

func (v V3D) Z() float64 {
	return v[Z]
}

func (v V3D) RotateZ(degrees float64) (rotated V3D) {
	radians := degreesToRadians(degrees)
	cosTheta := math.Cos(radians) // x projection
	sinTheta := math.Sin(radians) // y projection

	return V3D{
		v[X]*cosTheta - v[Y]*sinTheta,
		v[X]*sinTheta + v[Y]*cosTheta,
		v[Z],
	}
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
