package reco

type Configuration struct {
	MaxEvents        int         `json:"max_events" yaml:"max_events" toml:"max_events"`
	Verbosity        int         `json:"verbosity" yaml:"verbosity" toml:"verbosity"`
	FileIn           string      `json:"file_in" yaml:"file_in" toml:"file_in"`
	FileOut          string      `json:"file_out" yaml:"file_out" toml:"file_out"`
	OutputMode       OutputMode  `json:"output_mode" yaml:"output_mode" toml:"output_mode"`
	Watch            bool        `json:"watch" yaml:"watch" toml:"watch"`
	WatchSettleMs    int         `json:"watch_settle_ms" yaml:"watch_settle_ms" toml:"watch_settle_ms"`
	Signature        Signature   `json:"signature" yaml:"signature" toml:"signature"`
	Layout           string      `json:"layout" yaml:"layout" toml:"layout"`
	LayoutFile       string      `json:"layout_file" yaml:"layout_file" toml:"layout_file"`
	UseDB            bool        `json:"use_db" yaml:"use_db" toml:"use_db"`
	DBDriver         string      `json:"db_driver" yaml:"db_driver" toml:"db_driver"`
	Host             string      `json:"host" yaml:"host" toml:"host"`
	User             string      `json:"user" yaml:"user" toml:"user"`
	Passwd           string      `json:"pass" yaml:"pass" toml:"pass"`
	DBName           string      `json:"dbname" yaml:"dbname" toml:"dbname"`
	PositionSmear    float64     `json:"position_smear" yaml:"position_smear" toml:"position_smear"`
	TimeSmear        float64     `json:"time_smear" yaml:"time_smear" toml:"time_smear"`
	ParentMass       float64     `json:"parent_mass" yaml:"parent_mass" toml:"parent_mass"`
	SpeedOfLight     float64     `json:"speed_of_light" yaml:"speed_of_light" toml:"speed_of_light"`
	MomentumCeiling  float64     `json:"momentum_ceiling" yaml:"momentum_ceiling" toml:"momentum_ceiling"`
	ProductionPoint  [3]float64  `json:"production_point" yaml:"production_point" toml:"production_point"`
	Seed             uint64      `json:"seed" yaml:"seed" toml:"seed"`
	NumWorkers       int         `json:"num_workers" yaml:"num_workers" toml:"num_workers"`
	Parallel         bool        `json:"parallel" yaml:"parallel" toml:"parallel"`
	CompressionLevel int         `json:"compression_level" yaml:"compression_level" toml:"compression_level"`
	Trees            TreeNames   `json:"trees" yaml:"trees" toml:"trees"`
	Branches         BranchNames `json:"branches" yaml:"branches" toml:"branches"`
	MetricsFile      string      `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`
	PlotFile         string      `json:"plot_file" yaml:"plot_file" toml:"plot_file"`
	MomentumMin      float64     `json:"momentum_min" yaml:"momentum_min" toml:"momentum_min"`
	MomentumMax      float64     `json:"momentum_max" yaml:"momentum_max" toml:"momentum_max"`
	BinWidth         float64     `json:"bin_width" yaml:"bin_width" toml:"bin_width"`
	AnomalyThreshold float64     `json:"anomaly_threshold" yaml:"anomaly_threshold" toml:"anomaly_threshold"`
}

var configuration Configuration

func SetConfiguration(config Configuration) {
	configuration = config
}

// Kinematics collects the reconstruction constants of a configuration.
func (c Configuration) Kinematics() Kinematics {
	return Kinematics{
		PositionSmear:   c.PositionSmear,
		TimeSmear:       c.TimeSmear,
		ParentMass:      c.ParentMass,
		SpeedOfLight:    c.SpeedOfLight,
		MomentumCeiling: c.MomentumCeiling,
		ProductionPoint: vecFromArray(c.ProductionPoint),
	}
}
