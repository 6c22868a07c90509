package orbit5

import (
	"github.com/BurntSushi/toml"
)

// Simulation options I/O. Options are numeric switches consumed by the native
// simulation routine; users edit them as a TOML file and this module persists
// them as one versioned group of one-element datasets.

// SimOptions is the simulation option set.
type SimOptions struct {
	SimMode        int `toml:"sim_mode"`        // 1 full orbit, 2 guiding center, 3 hybrid, 4 field line
	EnableAdaptive int `toml:"enable_adaptive"` // adaptive guiding-center step
	RecordMode     int `toml:"record_mode"`

	FixedUseUserdefined int     `toml:"fixedstep_use_userdefined"`
	FixedUserdefined    float64 `toml:"fixedstep_userdefined"` // [s]
	FixedGyrodefined    int     `toml:"fixedstep_gyrodefined"` // steps per gyrotime

	AdaptiveTolOrbit float64 `toml:"adaptive_tol_orbit"`
	AdaptiveTolCCol  float64 `toml:"adaptive_tol_ccol"`
	AdaptiveMaxDRho  float64 `toml:"adaptive_max_drho"`
	AdaptiveMaxDPhi  float64 `toml:"adaptive_max_dphi"`

	EndCondSimTimeLim int     `toml:"endcond_simtimelim"`
	EndCondCpuTimeLim int     `toml:"endcond_cputimelim"`
	EndCondRhoLim     int     `toml:"endcond_rholim"`
	EndCondEnergyLim  int     `toml:"endcond_energylim"`
	EndCondWallHit    int     `toml:"endcond_wallhit"`
	EndCondMaxMileage float64 `toml:"endcond_max_mileage"` // [s]

	EnableOrbitFollowing    int `toml:"enable_orbit_following"`
	EnableCoulombCollisions int `toml:"enable_coulomb_collisions"`
	EnableMHD               int `toml:"enable_mhd"`

	EnableDist5D     int `toml:"enable_dist_5d"`
	EnableDist6D     int `toml:"enable_dist_6d"`
	EnableOrbitWrite int `toml:"enable_orbitwrite"`

	OrbitWriteMode     int     `toml:"orbitwrite_mode"`
	OrbitWriteNPoint   int     `toml:"orbitwrite_npoint"`
	OrbitWriteInterval float64 `toml:"orbitwrite_interval"` // [s]
}

// optionEntries flattens the option set into persisted dataset entries.
func optionEntries(o *SimOptions) []datasetEntry {
	return []datasetEntry{
		count("sim_mode", o.SimMode),
		count("enable_adaptive", o.EnableAdaptive),
		count("record_mode", o.RecordMode),
		count("fixedstep_use_userdefined", o.FixedUseUserdefined),
		scalar("fixedstep_userdefined", o.FixedUserdefined),
		count("fixedstep_gyrodefined", o.FixedGyrodefined),
		scalar("adaptive_tol_orbit", o.AdaptiveTolOrbit),
		scalar("adaptive_tol_ccol", o.AdaptiveTolCCol),
		scalar("adaptive_max_drho", o.AdaptiveMaxDRho),
		scalar("adaptive_max_dphi", o.AdaptiveMaxDPhi),
		count("endcond_simtimelim", o.EndCondSimTimeLim),
		count("endcond_cputimelim", o.EndCondCpuTimeLim),
		count("endcond_rholim", o.EndCondRhoLim),
		count("endcond_energylim", o.EndCondEnergyLim),
		count("endcond_wallhit", o.EndCondWallHit),
		scalar("endcond_max_mileage", o.EndCondMaxMileage),
		count("enable_orbit_following", o.EnableOrbitFollowing),
		count("enable_coulomb_collisions", o.EnableCoulombCollisions),
		count("enable_mhd", o.EnableMHD),
		count("enable_dist_5d", o.EnableDist5D),
		count("enable_dist_6d", o.EnableDist6D),
		count("enable_orbitwrite", o.EnableOrbitWrite),
		count("orbitwrite_mode", o.OrbitWriteMode),
		count("orbitwrite_npoint", o.OrbitWriteNPoint),
		scalar("orbitwrite_interval", o.OrbitWriteInterval),
	}
}

// LoadOptions reads an option set from a TOML file.
func LoadOptions(filename string) (*SimOptions, error) {
	var o SimOptions
	if _, err := toml.DecodeFile(filename, &o); err != nil {
		return nil, wrapf(ErrFormat, "options file %s: %v", filename, err)
	}
	return &o, nil
}

// WriteOptions writes an option set as a versioned input group.
func WriteOptions(s WritableStore, o *SimOptions, desc string) (string, QID, error) {
	path, qid, err := AddGroup(s, Options, PrefixOpt, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path, optionEntries(o)...); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readOptionsPayload(s Store, qid QID) (Payload, error) {
	// Option groups have no fixed required subset beyond the mode switch;
	// option sets grow between code versions.
	return requirePayload(s, Options.String()+"/"+PrefixOpt.GroupName(qid), []string{
		"sim_mode",
	})
}
