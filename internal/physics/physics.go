// Package physics turns weather samples into turbine power and energy.
package physics

import (
	"fmt"
	"math"

	"github.com/katiamach/wind-yield-api/internal/model"
)

const (
	// GasConstant is the universal gas constant in J/(mol·K).
	GasConstant = 8.314
	// MolarMassAir is the molar mass of dry air in g/mol.
	MolarMassAir = 28.97

	celsiusOffset = 273.15
	hPaToPa       = 100.0
	kmhPerMs      = 3.6
	wattsPerKW    = 1000.0

	// rotorRadiusDivisor shrinks the rotor radius before the swept area is computed.
	// A plain circular rotor would use the full radius.
	rotorRadiusDivisor = 4.0

	// EnergyScale multiplies each power sample when accumulating energy.
	// Every sample is taken to stand for a whole day (3600 s * 24).
	EnergyScale = 3600 * 24 / 10e-6
)

// AirDensity derives air density from temperature (°C) and surface pressure (hPa) with the ideal gas law,
// ignoring humidity. The result is in g/m³.
func AirDensity(temperatureC, pressureHPa []float64) ([]float64, error) {
	if len(temperatureC) != len(pressureHPa) {
		return nil, fmt.Errorf("%w: %d temperature samples but %d pressure samples",
			model.ErrComputationFault, len(temperatureC), len(pressureHPa))
	}

	density := make([]float64, len(temperatureC))
	for i := range temperatureC {
		density[i] = pressureHPa[i] * hPaToPa / (GasConstant * (celsiusOffset + temperatureC[i])) * MolarMassAir
	}

	return density, nil
}

// SweptArea returns the rotor area in m² used by Power.
func SweptArea(radius float64) float64 {
	r := radius / rotorRadiusDivisor
	return math.Pi * r * r
}

// Power computes instantaneous electrical power in kW for each aligned density/wind speed pair.
func Power(airDensity, windSpeedKmh []float64, sweptArea, powerCoefficient, generatorEfficiency float64) (model.PowerSeries, error) {
	if len(airDensity) != len(windSpeedKmh) {
		return nil, fmt.Errorf("%w: %d air density samples but %d wind speed samples",
			model.ErrComputationFault, len(airDensity), len(windSpeedKmh))
	}

	power := make(model.PowerSeries, len(airDensity))
	for i := range airDensity {
		v := windSpeedKmh[i] / kmhPerMs
		power[i] = 0.5 * airDensity[i] * sweptArea * powerCoefficient * v * v * v / wattsPerKW * generatorEfficiency
	}

	return power, nil
}

// CumulativeEnergy accumulates power into energy. The first element is always 0,
// so power[0] never contributes.
func CumulativeEnergy(power model.PowerSeries) model.EnergySeries {
	energy := make(model.EnergySeries, len(power))
	for i := 1; i < len(power); i++ {
		energy[i] = energy[i-1] + power[i]*EnergyScale
	}

	return energy
}
