package feature

import (
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

const (
	NeutralTemperature = 65.0
	TemperatureScale   = 20.0
	WindScale          = 15.0

	// Dome games usually report no weather; they get these instead.
	DomeTemperature = 65.0
	DomeWindSpeed   = 5.0
)

// NormalizeTemperature centers on 65F and scales by 20. A missing reading
// counts as 65.
func NormalizeTemperature(temp *float64) float64 {
	v := NeutralTemperature
	if temp != nil {
		v = *temp
	}
	return (v - NeutralTemperature) / TemperatureScale
}

// NormalizeWind scales by 15. A missing reading counts as calm.
func NormalizeWind(wind *float64) float64 {
	if wind == nil {
		return 0
	}
	return *wind / WindScale
}

// NormalizeWeather adds temp_normalized and wind_normalized and makes
// is_dome non-null. Dome games with no reading use DomeTemperature and
// DomeWindSpeed. Without weather columns both features are 0.
func NormalizeWeather(t *frame.Table) (*frame.Table, error) {
	n := t.Len()
	temps := t.Column(game.ColTemperature)
	winds := t.Column(game.ColWindSpeed)
	domes := t.Column(game.ColIsDome)

	tempNorm := frame.NewColumn(ColTempNormalized, frame.KindFloat, n)
	windNorm := frame.NewColumn(ColWindNormalized, frame.KindFloat, n)
	isDome := frame.NewColumn(game.ColIsDome, frame.KindBool, n)

	for i := 0; i < n; i++ {
		dome := false
		if domes != nil {
			dome, _ = domes.BoolAt(i)
		}
		isDome.SetBool(i, dome)

		temp := readingAt(temps, i)
		wind := readingAt(winds, i)
		if dome {
			if temp == nil {
				temp = ptr(DomeTemperature)
			}
			if wind == nil {
				wind = ptr(DomeWindSpeed)
			}
		}
		tempNorm.SetFloat(i, NormalizeTemperature(temp))
		windNorm.SetFloat(i, NormalizeWind(wind))
	}

	return t.With(tempNorm, windNorm, isDome)
}

func readingAt(col *frame.Column, row int) *float64 {
	if col == nil {
		return nil
	}
	v, ok := col.FloatAt(row)
	if !ok {
		return nil
	}
	return &v
}

func ptr(v float64) *float64 {
	return &v
}
