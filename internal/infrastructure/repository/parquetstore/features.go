package parquetstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"

	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
)

const rollTag = "roll"

var ErrDatasetNotFound = errors.New("feature dataset not found")

// featureRow is the stored shape of a feature.Record. Rolling columns are
// named per window, so their parquet tags are filled in by featureRowType.
type featureRow struct {
	PlayerID   string  `parquet:"player_id"`
	PlayerName string  `parquet:"player_name"`
	Position   string  `parquet:"position"`
	Team       string  `parquet:"team"`
	Season     int64   `parquet:"season"`
	Week       int64   `parquet:"week"`
	GameID     *string `parquet:"game_id,optional"`
	Opponent   *string `parquet:"opponent,optional"`
	Window     int64   `parquet:"rolling_window"`

	PassingYardsRoll   *float64 `roll:"passing_yards"`
	PassingTDsRoll     *float64 `roll:"passing_tds"`
	RushingYardsRoll   *float64 `roll:"rushing_yards"`
	RushingTDsRoll     *float64 `roll:"rushing_tds"`
	CarriesRoll        *float64 `roll:"carries"`
	ReceivingYardsRoll *float64 `roll:"receiving_yards"`
	ReceivingTDsRoll   *float64 `roll:"receiving_tds"`
	ReceptionsRoll     *float64 `roll:"receptions"`

	OppPassStrength *float64 `parquet:"opp_pass_defense_strength,optional"`
	OppRushStrength *float64 `parquet:"opp_rush_defense_strength,optional"`
	OppPassRank     *int64   `parquet:"opp_pass_yards_allowed_rank,optional"`
	OppRushRank     *int64   `parquet:"opp_rush_yards_allowed_rank,optional"`
	OppTotalRank    *int64   `parquet:"opp_total_yards_allowed_rank,optional"`

	TempNormalized float64 `parquet:"temp_normalized"`
	WindNormalized float64 `parquet:"wind_normalized"`
	IsHome         *bool   `parquet:"is_home,optional"`
	IsDome         bool    `parquet:"is_dome"`

	PassingYards   *float64 `parquet:"passing_yards,optional"`
	PassingTDs     *float64 `parquet:"passing_tds,optional"`
	RushingYards   *float64 `parquet:"rushing_yards,optional"`
	RushingTDs     *float64 `parquet:"rushing_tds,optional"`
	Carries        *float64 `parquet:"carries,optional"`
	ReceivingYards *float64 `parquet:"receiving_yards,optional"`
	ReceivingTDs   *float64 `parquet:"receiving_tds,optional"`
	Receptions     *float64 `parquet:"receptions,optional"`
}

// Manifest describes a saved feature dataset. It is written next to the
// Parquet file so consumers can check the column contract without reading
// the data.
type Manifest struct {
	Name           string              `json:"name"`
	ColumnsVersion string              `json:"columns_version"`
	Window         int                 `json:"rolling_window"`
	Columns        []string            `json:"columns"`
	Targets        map[string][]string `json:"targets"`
	Seasons        []int               `json:"seasons"`
	Rows           int                 `json:"rows"`
	CreatedAt      time.Time           `json:"created_at"`
}

// SaveFeatures writes records to <data>/features/<name>.parquet plus a JSON
// manifest and returns the Parquet path.
func (s *Store) SaveFeatures(ctx context.Context, name string, records []feature.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkName(name); err != nil {
		return "", err
	}

	window := recordsWindow(records)
	for _, rec := range records {
		if rec.Window > 0 && rec.Window != window {
			return "", crerr.Newf("feature records mix rolling windows %d and %d", window, rec.Window)
		}
	}

	path := s.path(featuresDir, name+".parquet")
	err := writeFile(path, func(w io.Writer) error {
		return encodeFeatureRows(w, window, records)
	})
	if err != nil {
		return "", err
	}

	manifest := newManifest(name, records, s.now())
	body, err := sonic.ConfigStd.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", crerr.Wrap(err, "encode feature manifest")
	}
	if err := os.WriteFile(s.manifestPath(name), body, 0o644); err != nil {
		return "", crerr.Wrapf(err, "write feature manifest %s", name)
	}

	s.logger.DebugContext(ctx, "wrote feature dataset", "path", path, "rows", len(records), "rolling_window", window)
	return path, nil
}

func (s *Store) LoadFeatures(ctx context.Context, name string) ([]feature.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}

	path := s.path(featuresDir, name+".parquet")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, crerr.Wrapf(ErrDatasetNotFound, "dataset %s", name)
	}

	rows, err := readFeatureRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]feature.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (s *Store) LoadManifest(ctx context.Context, name string) (Manifest, error) {
	if err := ctx.Err(); err != nil {
		return Manifest{}, err
	}
	if err := checkName(name); err != nil {
		return Manifest{}, err
	}

	body, err := os.ReadFile(s.manifestPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, crerr.Wrapf(ErrDatasetNotFound, "manifest %s", name)
	}
	if err != nil {
		return Manifest{}, crerr.Wrapf(err, "read feature manifest %s", name)
	}

	var manifest Manifest
	if err := sonic.Unmarshal(body, &manifest); err != nil {
		return Manifest{}, crerr.Wrapf(err, "decode feature manifest %s", name)
	}
	return manifest, nil
}

func (s *Store) manifestPath(name string) string {
	return s.path(featuresDir, name+".manifest.json")
}

func newManifest(name string, records []feature.Record, now time.Time) Manifest {
	window := recordsWindow(records)

	targets := make(map[string][]string)
	for position, names := range feature.TargetMap() {
		targets[string(position)] = names
	}

	var seasons []int
	for _, rec := range records {
		seasons = append(seasons, rec.Season)
	}
	slices.Sort(seasons)

	return Manifest{
		Name:           name,
		ColumnsVersion: feature.ColumnsVersion,
		Window:         window,
		Columns:        feature.Columns(window),
		Targets:        targets,
		Seasons:        slices.Compact(seasons),
		Rows:           len(records),
		CreatedAt:      now.UTC(),
	}
}

func recordsWindow(records []feature.Record) int {
	if len(records) > 0 && records[0].Window > 0 {
		return records[0].Window
	}
	return feature.DefaultWindow
}

// featureRowType returns featureRow with its rolling fields tagged by the
// column names feature.RollingColumn gives for window. The result converts
// to and from featureRow since only tags differ.
func featureRowType(window int) reflect.Type {
	base := reflect.TypeFor[featureRow]()
	fields := make([]reflect.StructField, base.NumField())
	for i := range fields {
		field := base.Field(i)
		if stat, ok := field.Tag.Lookup(rollTag); ok {
			field.Tag = reflect.StructTag(fmt.Sprintf(`parquet:"%s,optional"`, feature.RollingColumn(stat, window)))
		}
		fields[i] = field
	}
	return reflect.StructOf(fields)
}

func encodeFeatureRows(w io.Writer, window int, records []feature.Record) error {
	rowType := featureRowType(window)
	writer := parquet.NewWriter(w, parquet.SchemaOf(reflect.New(rowType).Interface()), parquet.Compression(&parquet.Snappy))
	for _, rec := range records {
		row := reflect.ValueOf(toFeatureRow(rec)).Convert(rowType)
		if err := writer.Write(row.Interface()); err != nil {
			_ = writer.Close()
			return err
		}
	}
	return writer.Close()
}

func readFeatureRows(path string) ([]featureRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, crerr.Wrapf(err, "stat %s", path)
	}
	file, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, crerr.Wrapf(err, "open parquet %s", path)
	}
	window, err := windowFromSchema(file.Schema())
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", path)
	}

	rowType := featureRowType(window)
	reader := parquet.NewReader(f, parquet.SchemaOf(reflect.New(rowType).Interface()))
	defer reader.Close()

	baseType := reflect.TypeFor[featureRow]()
	rows := make([]featureRow, 0, reader.NumRows())
	for range reader.NumRows() {
		row := reflect.New(rowType)
		if err := reader.Read(row.Interface()); err != nil {
			return nil, crerr.Wrapf(err, "read row %d of %s", len(rows), path)
		}
		rows = append(rows, row.Elem().Convert(baseType).Interface().(featureRow))
	}
	return rows, nil
}

// windowFromSchema recovers the rolling window from the passing yards
// rolling column name.
func windowFromSchema(schema *parquet.Schema) (int, error) {
	prefix := playerweek.StatPassingYards + "_roll"
	for _, field := range schema.Fields() {
		suffix, ok := strings.CutPrefix(field.Name(), prefix)
		if !ok {
			continue
		}
		window, err := strconv.Atoi(suffix)
		if err != nil || window < 1 {
			return 0, crerr.Newf("bad rolling column %q", field.Name())
		}
		return window, nil
	}
	return 0, crerr.Newf("no %sN column in feature file", prefix)
}

func toFeatureRow(rec feature.Record) featureRow {
	return featureRow{
		PlayerID:           rec.PlayerID,
		PlayerName:         rec.PlayerName,
		Position:           rec.Position,
		Team:               rec.Team,
		Season:             int64(rec.Season),
		Week:               int64(rec.Week),
		GameID:             rec.GameID,
		Opponent:           rec.Opponent,
		Window:             int64(rec.Window),
		PassingYardsRoll:   rec.PassingYardsRoll,
		PassingTDsRoll:     rec.PassingTDsRoll,
		RushingYardsRoll:   rec.RushingYardsRoll,
		RushingTDsRoll:     rec.RushingTDsRoll,
		CarriesRoll:        rec.CarriesRoll,
		ReceivingYardsRoll: rec.ReceivingYardsRoll,
		ReceivingTDsRoll:   rec.ReceivingTDsRoll,
		ReceptionsRoll:     rec.ReceptionsRoll,
		OppPassStrength:    rec.OppPassStrength,
		OppRushStrength:    rec.OppRushStrength,
		OppPassRank:        toInt64(rec.OppPassRank),
		OppRushRank:        toInt64(rec.OppRushRank),
		OppTotalRank:       toInt64(rec.OppTotalRank),
		TempNormalized:     rec.TempNormalized,
		WindNormalized:     rec.WindNormalized,
		IsHome:             rec.IsHome,
		IsDome:             rec.IsDome,
		PassingYards:       rec.PassingYards,
		PassingTDs:         rec.PassingTDs,
		RushingYards:       rec.RushingYards,
		RushingTDs:         rec.RushingTDs,
		Carries:            rec.Carries,
		ReceivingYards:     rec.ReceivingYards,
		ReceivingTDs:       rec.ReceivingTDs,
		Receptions:         rec.Receptions,
	}
}

func (row featureRow) toRecord() feature.Record {
	return feature.Record{
		PlayerID:           row.PlayerID,
		PlayerName:         row.PlayerName,
		Position:           row.Position,
		Team:               row.Team,
		Season:             int(row.Season),
		Week:               int(row.Week),
		GameID:             row.GameID,
		Opponent:           row.Opponent,
		Window:             int(row.Window),
		PassingYardsRoll:   row.PassingYardsRoll,
		PassingTDsRoll:     row.PassingTDsRoll,
		RushingYardsRoll:   row.RushingYardsRoll,
		RushingTDsRoll:     row.RushingTDsRoll,
		CarriesRoll:        row.CarriesRoll,
		ReceivingYardsRoll: row.ReceivingYardsRoll,
		ReceivingTDsRoll:   row.ReceivingTDsRoll,
		ReceptionsRoll:     row.ReceptionsRoll,
		OppPassStrength:    row.OppPassStrength,
		OppRushStrength:    row.OppRushStrength,
		OppPassRank:        toInt(row.OppPassRank),
		OppRushRank:        toInt(row.OppRushRank),
		OppTotalRank:       toInt(row.OppTotalRank),
		TempNormalized:     row.TempNormalized,
		WindNormalized:     row.WindNormalized,
		IsHome:             row.IsHome,
		IsDome:             row.IsDome,
		PassingYards:       row.PassingYards,
		PassingTDs:         row.PassingTDs,
		RushingYards:       row.RushingYards,
		RushingTDs:         row.RushingTDs,
		Carries:            row.Carries,
		ReceivingYards:     row.ReceivingYards,
		ReceivingTDs:       row.ReceivingTDs,
		Receptions:         row.Receptions,
	}
}

func toInt64(v *int) *int64 {
	if v == nil {
		return nil
	}
	out := int64(*v)
	return &out
}

func toInt(v *int64) *int {
	if v == nil {
		return nil
	}
	out := int(*v)
	return &out
}
