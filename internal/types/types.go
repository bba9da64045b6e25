// README: Common value objects shared across modules.
package types

type ID string

// Point is a geographic coordinate in decimal degrees.
// Valid latitudes are [-90, 90] and longitudes [-180, 180].
type Point struct {
	Lat float64
	Lng float64
}
