package domain

// ApplyVegetalisation applies nbArbres planted trees: cooler temperature and
// heat island, less PM2.5, more biodiversity.
func ApplyVegetalisation(r Indicators, nbArbres float64) Indicators {
	r.Temperature += treesTemperature.At(nbArbres)
	r.ICU += treesICU.At(nbArbres)
	r.PM25 = scalePct(r.PM25, treesPM25.At(nbArbres))
	r.Biodiversite = scalePct(r.Biodiversite, treesBiodiv.At(nbArbres))
	return r
}

// ApplyEspacesVerts applies a deltaEVpct growth of green-space area.
//
// Vegetation cover is scaled by the raw magnitude rather than a table value,
// so +25% green space yields +25% vegetation.
func ApplyEspacesVerts(r Indicators, deltaEVpct float64) Indicators {
	r.SurfaceParHab = scalePct(r.SurfaceParHab, greenSurfaceParHab.At(deltaEVpct))
	r.ICU += greenICU.At(deltaEVpct)
	r.Biodiversite = scalePct(r.Biodiversite, greenBiodiv.At(deltaEVpct))
	r.Loisirs = scalePct(r.Loisirs, greenLoisirs.At(deltaEVpct))
	r.Vegetation = scalePct(r.Vegetation, deltaEVpct)
	return r
}

// ApplyDensite applies a signed deltaDensitePct change of built density.
func ApplyDensite(r Indicators, deltaDensitePct float64) Indicators {
	r.ICU += densityICU.At(deltaDensitePct)
	r.PM25 = scalePct(r.PM25, densityPM25.At(deltaDensitePct))
	r.SurfaceEVParHab = scalePct(r.SurfaceEVParHab, densitySurfaceEVParHab.At(deltaDensitePct))
	return r
}

// ApplySolsPermeables converts pctPerm percent of the surface to permeable soil.
func ApplySolsPermeables(r Indicators, pctPerm float64) Indicators {
	r.Infiltration = scalePct(r.Infiltration, permInfiltration.At(pctPerm))
	r.Inondations = scalePct(r.Inondations, permInondations.At(pctPerm))
	r.Temperature += permTemperature.At(pctPerm)
	r.Nappes = scalePct(r.Nappes, permNappes.At(pctPerm))
	return r
}

// ComposeScenario runs the four transforms in order, each one reading the
// record produced by the previous one. base is not modified.
func ComposeScenario(base Indicators, a Actions) Indicators {
	r := ApplyVegetalisation(base, a.NbArbres)
	r = ApplyEspacesVerts(r, a.DeltaEVPct)
	r = ApplyDensite(r, a.DeltaDensitePct)
	return ApplySolsPermeables(r, a.PctPerm)
}

func scalePct(v, pct float64) float64 {
	return v * (1 + pct/100)
}
