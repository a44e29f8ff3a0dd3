package convert_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/enermodel/h2khpxml/internal/convert"
	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/testutil"
	"github.com/enermodel/h2khpxml/internal/validate"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_FullHouse(t *testing.T) {
	res, logs := testutil.RunConversion(t, testutil.ValidHouse)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "5010", res.WeatherCode)
	assert.Contains(t, logs, "Conversion succeeded.")

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `<BuildingID id="CASE-0001"/>`)
	assert.Contains(t, out, `<SystemIdentifier id="Wall_1"/>`)
	assert.Contains(t, out, `<SystemIdentifier id="Wall_2"/>`)
	assert.Contains(t, out, `<AttachedToWall idref="Wall_1"/>`)
	assert.Contains(t, out, `<AttachedToWall idref="Wall_2"/>`)
	assert.Contains(t, out, "<YearBuilt>1987</YearBuilt>")
	assert.Contains(t, out, "<ConditionedFloorArea>2152.8</ConditionedFloorArea>")
	assert.Contains(t, out, "<StationCode>5010</StationCode>")
	assert.Contains(t, out, "<HeatingCapacity>68242.8</HeatingCapacity>")
	assert.Contains(t, out, "<TankVolume>47.6</TankVolume>")

	// The written document passes its own structural validation.
	findings, err := validate.Check(data)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestConvert_Deterministic(t *testing.T) {
	run := func() []byte {
		res, _ := testutil.RunConversion(t, testutil.ValidHouse)
		require.NoError(t, res.Err)
		data, err := os.ReadFile(res.OutputPath)
		require.NoError(t, err)
		return data
	}
	if diff := cmp.Diff(string(run()), string(run())); diff != "" {
		t.Fatalf("two conversions of the same input differ (-first +second):\n%s", diff)
	}
}

func TestConvert_MissingBuildingID(t *testing.T) {
	src := strings.Replace(testutil.ValidHouse, `<File id="CASE-0001"/>`, `<File/>`, 1)
	res, _ := testutil.RunConversion(t, src)

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errdefs.ErrSchemaMismatch)
	assert.Equal(t, "parse", res.Stage)
	assert.Empty(t, res.OutputPath)

	// Nothing may be written for a failed file.
	outDir := filepath.Join(filepath.Dir(res.InputPath), "out")
	entries, err := os.ReadDir(outDir)
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestConvert_MalformedXML(t *testing.T) {
	res, _ := testutil.RunConversion(t, "<HouseFile><House>")
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errdefs.ErrParse)
	assert.Equal(t, "parse", res.Stage)
	assert.Contains(t, res.Err.Error(), res.InputPath)
}

func TestConvert_AmbiguousAttachmentWarnsAndSucceeds(t *testing.T) {
	src := strings.Replace(testutil.ValidHouse, "<Label>W2</Label>", "<Label>W1</Label>", 1)
	res, _ := testutil.RunConversion(t, src)

	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Warnings)

	var codes []state.WarningCode
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, state.AttachmentAmbiguity)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<AttachedToWall idref=")
}

func TestConvert_ERSOverrides(t *testing.T) {
	// ProgramMode sits under HouseFile, before House.
	src := strings.Replace(testutil.ValidHouse, "<House>", `<ProgramMode code="ERS"><Options referenceWaterHeater="true" standardLighting="true"/></ProgramMode>
  <House>`, 1)

	res, _ := testutil.RunConversion(t, src)
	require.NoError(t, res.Err)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	out := string(data)

	// Reference systems replace the modeled ones, keeping identifiers.
	assert.Equal(t, 1, strings.Count(out, "<WaterHeatingSystem>"))
	assert.Contains(t, out, "<EnergyFactor>0.62</EnergyFactor>")
	assert.NotContains(t, out, "<EnergyFactor>0.92</EnergyFactor>")
	assert.Contains(t, out, "<FuelType>natural gas</FuelType>")
	assert.Contains(t, out, "<Value>1680</Value>")
}

func TestConvert_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "house.h2k", testutil.ValidHouse)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := convert.Convert(ctx, input, testutil.Options(filepath.Join(dir, "out")))
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Empty(t, res.OutputPath)
}

func TestConvert_StrictExternalValidator(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "house.h2k", testutil.ValidHouse)

	opts := testutil.Options(filepath.Join(dir, "out"))
	opts.ExternalValidator = &validate.External{
		Command: []string{"sh", "-c", `echo "/HPXML: style finding"`},
	}

	res := convert.Convert(context.Background(), input, opts)
	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Warnings)
	last := res.Warnings[len(res.Warnings)-1]
	assert.Equal(t, state.ValidationFinding, last.Code)
	assert.Contains(t, last.Message, "style finding")

	opts.Strict = true
	res = convert.Convert(context.Background(), input, opts)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errdefs.ErrValidation)
}

func TestConvert_StrictFailurePublishesNothing(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "house.h2k", testutil.ValidHouse)
	outDir := filepath.Join(dir, "out")

	opts := testutil.Options(outDir)
	opts.Strict = true
	opts.ExternalValidator = &validate.External{
		Command: []string{"sh", "-c", `echo "/HPXML: rejected"`},
	}

	res := convert.Convert(context.Background(), input, opts)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errdefs.ErrValidation)
	assert.Empty(t, res.OutputPath)

	// The rejected document must not reach the final path, and no staged
	// temp file may be left behind.
	_, err := os.Stat(filepath.Join(outDir, "house.xml"))
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConvert_ValidateOnly(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "house.h2k", testutil.ValidHouse)
	outDir := filepath.Join(dir, "out")

	opts := testutil.Options(outDir)
	opts.ValidateOnly = true

	res := convert.Convert(context.Background(), input, opts)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.OutputPath)

	// Nothing touches the filesystem in validate-only mode.
	_, err := os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

func TestConvert_ValidateOnlyStrictStillFails(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "house.h2k", testutil.ValidHouse)
	outDir := filepath.Join(dir, "out")

	opts := testutil.Options(outDir)
	opts.ValidateOnly = true
	opts.Strict = true
	opts.ExternalValidator = &validate.External{
		Command: []string{"sh", "-c", `echo "/HPXML: rejected"`},
	}

	res := convert.Convert(context.Background(), input, opts)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errdefs.ErrValidation)
	assert.Empty(t, res.OutputPath)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConvertBatch_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		testutil.WriteFile(t, dir, "a.h2k", testutil.ValidHouse),
		testutil.WriteFile(t, dir, "b.h2k", "<HouseFile><House>"),
		testutil.WriteFile(t, dir, "c.h2k", testutil.ValidHouse),
	}

	var mu sync.Mutex
	var seen int
	progress := func(convert.Result) {
		mu.Lock()
		seen++
		mu.Unlock()
	}

	opts := testutil.Options(filepath.Join(dir, "out"))
	opts.Workers = 2
	res := convert.ConvertBatch(context.Background(), inputs, opts, progress)

	assert.Equal(t, convert.BatchPartial, res.Status)
	assert.Equal(t, 1, res.Failed())
	assert.Equal(t, 3, seen)

	// Results arrive in input order regardless of completion order.
	require.Len(t, res.Files, 3)
	assert.Equal(t, inputs[0], res.Files[0].InputPath)
	assert.NoError(t, res.Files[0].Err)
	assert.ErrorIs(t, res.Files[1].Err, errdefs.ErrParse)
	assert.NoError(t, res.Files[2].Err)

	for _, f := range []string{"a.xml", "c.xml"} {
		_, err := os.Stat(filepath.Join(dir, "out", f))
		assert.NoError(t, err)
	}
}

func TestConvertBatch_AllFail(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		testutil.WriteFile(t, dir, "a.h2k", "not xml"),
		testutil.WriteFile(t, dir, "b.h2k", "<broken"),
	}

	res := convert.ConvertBatch(context.Background(), inputs, testutil.Options(filepath.Join(dir, "out")), nil)
	assert.Equal(t, convert.BatchFailed, res.Status)
	assert.Equal(t, 2, res.Failed())
}

func TestConvertBatch_Empty(t *testing.T) {
	res := convert.ConvertBatch(context.Background(), nil, testutil.Options(t.TempDir()), nil)
	assert.Equal(t, convert.BatchOK, res.Status)
	assert.Empty(t, res.Files)
}

func TestConvertBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, name := range []string{"a.h2k", "b.h2k", "c.h2k"} {
		inputs = append(inputs, testutil.WriteFile(t, dir, name, testutil.ValidHouse))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testutil.Options(filepath.Join(dir, "out"))
	opts.Workers = 1
	res := convert.ConvertBatch(ctx, inputs, opts, nil)

	assert.Equal(t, convert.BatchFailed, res.Status)
	for _, f := range res.Files {
		assert.ErrorIs(t, f.Err, context.Canceled)
	}
}
