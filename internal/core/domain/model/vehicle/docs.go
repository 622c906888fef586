// Package vehicle provides the Vehicle aggregate. A vehicle is allocated to at most
// one planned or in-progress tour and accumulates mileage from completed tours.
package vehicle
