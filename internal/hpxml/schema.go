package hpxml

// Target namespace and schema version declared on the root element. The
// serializer preserves these exactly; the downstream toolchain rejects
// documents without them.
const (
	Namespace     = "http://hpxmlonline.com/2019/10"
	SchemaVersion = "4.0"
)

// sectionPath maps a record type to its section path under BuildingDetails.
// The closed set of types doubles as the assembler's schema check: a record
// of an unlisted type is a processor defect.
var sectionPath = map[string][]string{
	"Wall":               {"Enclosure", "Walls"},
	"Window":             {"Enclosure", "Windows"},
	"Door":               {"Enclosure", "Doors"},
	"Roof":               {"Enclosure", "Roofs"},
	"Foundation":         {"Enclosure", "Foundations"},
	"FoundationWall":     {"Enclosure", "FoundationWalls"},
	"Slab":               {"Enclosure", "Slabs"},
	"HeatingSystem":      {"Systems", "HVAC", "HVACPlant"},
	"CoolingSystem":      {"Systems", "HVAC", "HVACPlant"},
	"VentilationFan":     {"Systems", "MechanicalVentilation", "VentilationFans"},
	"WaterHeatingSystem": {"Systems", "WaterHeating"},
	"Refrigerator":       {"Appliances"},
	"CookingRange":       {"Appliances"},
	"LightingGroup":      {"Lighting"},
	"PlugLoad":           {"MiscLoads"},
}

// sectionOrder fixes the order of the BuildingDetails sections. Emission
// order from processors is never assumed to be final order.
var sectionOrder = []string{
	"BuildingSummary",
	"ClimateandRiskZones",
	"Enclosure",
	"Systems",
	"Appliances",
	"Lighting",
	"MiscLoads",
}

// enclosureOrder fixes the child order inside Enclosure, which the target
// schema is sensitive to.
var enclosureOrder = []string{
	"Roofs",
	"Walls",
	"Foundations",
	"FoundationWalls",
	"Slabs",
	"Windows",
	"Doors",
}

// fieldOrder lists the canonical child order for each record type. Keys may
// be slash paths, which the assembler expands into nested elements. Keys
// present on a record but absent here are appended alphabetically, so the
// output stays deterministic even for extension properties.
var fieldOrder = map[string][]string{
	"Wall": {
		"WallType/WoodStud",
		"Area",
		"Azimuth",
		"Insulation/AssemblyEffectiveRValue",
	},
	"Window": {
		"Area",
		"Azimuth",
		"UFactor",
		"SHGC",
		"AttachedToWall",
	},
	"Door": {
		"AttachedToWall",
		"Area",
		"Azimuth",
		"RValue",
	},
	"Roof": {
		"InteriorAdjacentTo",
		"Area",
		"RoofType",
		"Insulation/AssemblyEffectiveRValue",
	},
	"Foundation": {
		"FoundationType/Basement/Conditioned",
		"FoundationType/Crawlspace/Vented",
		"FoundationType/SlabOnGrade",
		"AttachedToFoundationWall",
		"AttachedToSlab",
	},
	"FoundationWall": {
		"Type",
		"Height",
		"Area",
		"DepthBelowGrade",
		"Insulation/AssemblyEffectiveRValue",
	},
	"Slab": {
		"Area",
		"Thickness",
		"ExposedPerimeter",
		"PerimeterInsulation/Layer/NominalRValue",
	},
	"HeatingSystem": {
		"HeatingSystemType/Furnace",
		"HeatingSystemType/Boiler",
		"HeatingSystemType/ElectricResistance",
		"HeatingSystemFuel",
		"HeatingCapacity",
		"AnnualHeatingEfficiency/Units",
		"AnnualHeatingEfficiency/Value",
		"FractionHeatLoadServed",
	},
	"CoolingSystem": {
		"CoolingSystemType",
		"CoolingSystemFuel",
		"CoolingCapacity",
		"AnnualCoolingEfficiency/Units",
		"AnnualCoolingEfficiency/Value",
		"FractionCoolLoadServed",
	},
	"VentilationFan": {
		"FanType",
		"RatedFlowRate",
		"HoursInOperation",
		"UsedForWholeBuildingVentilation",
		"SensibleRecoveryEfficiency",
	},
	"WaterHeatingSystem": {
		"FuelType",
		"WaterHeaterType",
		"TankVolume",
		"FractionDHWLoadServed",
		"EnergyFactor",
	},
	"Refrigerator": {
		"RatedAnnualkWh",
	},
	"CookingRange": {
		"FuelType",
	},
	"LightingGroup": {
		"Location",
		"LightingType/LightEmittingDiode",
		"FractionofUnitsInLocation",
		"Load/Units",
		"Load/Value",
	},
	"PlugLoad": {
		"PlugLoadType",
		"Load/Units",
		"Load/Value",
	},
}

// elementName returns the XML element name for a record type. HPXML names
// match the record type names one-to-one.
func elementName(recordType string) string { return recordType }
