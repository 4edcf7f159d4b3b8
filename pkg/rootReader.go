package reco

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// TreeNames are the ntuple names of the simulation output.
type TreeNames struct {
	Truth    string `json:"truth" yaml:"truth" toml:"truth"`
	Products string `json:"products" yaml:"products" toml:"products"`
	Hits     string `json:"hits" yaml:"hits" toml:"hits"`
}

// BranchNames are the ntuple columns. All columns are doubles. An empty
// product momentum name skips that column.
type BranchNames struct {
	EventID         string    `json:"event_id" yaml:"event_id" toml:"event_id"`
	TruthMomentum   [3]string `json:"truth_momentum" yaml:"truth_momentum" toml:"truth_momentum"`
	TruthVertex     [3]string `json:"truth_vertex" yaml:"truth_vertex" toml:"truth_vertex"`
	TruthTime       string    `json:"truth_time" yaml:"truth_time" toml:"truth_time"`
	ProductPDG      string    `json:"product_pdg" yaml:"product_pdg" toml:"product_pdg"`
	ProductMomentum [3]string `json:"product_momentum" yaml:"product_momentum" toml:"product_momentum"`
	HitEdep         string    `json:"hit_edep" yaml:"hit_edep" toml:"hit_edep"`
	HitPosition     [3]string `json:"hit_position" yaml:"hit_position" toml:"hit_position"`
	HitTime         string    `json:"hit_time" yaml:"hit_time" toml:"hit_time"`
	HitDevice       string    `json:"hit_device" yaml:"hit_device" toml:"hit_device"`
	HitPDG          string    `json:"hit_pdg" yaml:"hit_pdg" toml:"hit_pdg"`
}

func DefaultTreeNames() TreeNames {
	return TreeNames{Truth: "Ntuple1", Products: "Ntuple2", Hits: "Ntuple3"}
}

func DefaultBranchNames() BranchNames {
	return BranchNames{
		EventID:         "evtNb",
		TruthMomentum:   [3]string{"kaonDK_momX", "kaonDK_momY", "kaonDK_momZ"},
		TruthVertex:     [3]string{"kaonDK_posX", "kaonDK_posY", "kaonDK_posZ"},
		TruthTime:       "kaonDK_time",
		ProductPDG:      "DKparticle_PDGEncoding",
		ProductMomentum: [3]string{"DKparticle_momX", "DKparticle_momY", "DKparticle_momZ"},
		HitEdep:         "Edep",
		HitPosition:     [3]string{"hitX", "hitY", "hitZ"},
		HitTime:         "hitT",
		HitDevice:       "deviceID",
		HitPDG:          "PDGEncoding",
	}
}

// ReadInput loads the truth, decay-product and hit tables of a ROOT file.
// A missing tree aborts the whole file.
func ReadInput(filename string, trees TreeNames, branches BranchNames) (*InputData, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	input := &InputData{Filename: filename}

	truthTree, err := getTree(f, filename, trees.Truth)
	if err != nil {
		return nil, err
	}
	productsTree, err := getTree(f, filename, trees.Products)
	if err != nil {
		return nil, err
	}
	hitsTree, err := getTree(f, filename, trees.Hits)
	if err != nil {
		return nil, err
	}

	input.Truth, err = readTruth(truthTree, branches)
	if err != nil {
		return nil, fmt.Errorf("error reading %s from %s: %w", trees.Truth, filename, err)
	}
	input.DecayProducts, err = readDecayProducts(productsTree, branches)
	if err != nil {
		return nil, fmt.Errorf("error reading %s from %s: %w", trees.Products, filename, err)
	}
	input.Hits, err = readHits(hitsTree, branches)
	if err != nil {
		return nil, fmt.Errorf("error reading %s from %s: %w", trees.Hits, filename, err)
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("%s: %d truth records, %d decay products, %d hits",
			filename, len(input.Truth), len(input.DecayProducts), len(input.Hits))
		logger.Info(message, "rootReader")
	}
	return input, nil
}

func getTree(dir riofs.Directory, filename string, name string) (rtree.Tree, error) {
	obj, err := dir.Get(name)
	if err != nil {
		return nil, &ErrMissingTree{Filename: filename, TreeName: name}
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("object %q in %q is not a tree", name, filename)
	}
	return tree, nil
}

func readTree(tree rtree.Tree, vars []rtree.ReadVar, fill func()) error {
	r, err := rtree.NewReader(tree, vars)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Read(func(ctx rtree.RCtx) error {
		fill()
		return nil
	})
}

type vecVars struct {
	x, y, z float64
}

func (v *vecVars) readVars(names [3]string) []rtree.ReadVar {
	return []rtree.ReadVar{
		{Name: names[0], Value: &v.x},
		{Name: names[1], Value: &v.y},
		{Name: names[2], Value: &v.z},
	}
}

func (v *vecVars) vec() r3.Vec {
	return r3.Vec{X: v.x, Y: v.y, Z: v.z}
}

func readTruth(tree rtree.Tree, branches BranchNames) ([]TruthRecord, error) {
	var evtNb, decayTime float64
	var momentum, vertex vecVars
	vars := []rtree.ReadVar{{Name: branches.EventID, Value: &evtNb}}
	vars = append(vars, momentum.readVars(branches.TruthMomentum)...)
	vars = append(vars, vertex.readVars(branches.TruthVertex)...)
	if branches.TruthTime != "" {
		vars = append(vars, rtree.ReadVar{Name: branches.TruthTime, Value: &decayTime})
	}

	records := make([]TruthRecord, 0, tree.Entries())
	err := readTree(tree, vars, func() {
		records = append(records, TruthRecord{
			EventID:   int(evtNb),
			Momentum:  momentum.vec(),
			Vertex:    vertex.vec(),
			DecayTime: decayTime,
		})
	})
	return records, err
}

func readDecayProducts(tree rtree.Tree, branches BranchNames) ([]DecayProductRecord, error) {
	var evtNb, pdg float64
	var momentum vecVars
	vars := []rtree.ReadVar{
		{Name: branches.EventID, Value: &evtNb},
		{Name: branches.ProductPDG, Value: &pdg},
	}
	if branches.ProductMomentum[0] != "" {
		vars = append(vars, momentum.readVars(branches.ProductMomentum)...)
	}

	records := make([]DecayProductRecord, 0, tree.Entries())
	err := readTree(tree, vars, func() {
		records = append(records, DecayProductRecord{
			EventID:  int(evtNb),
			PDG:      int(pdg),
			Momentum: momentum.vec(),
		})
	})
	return records, err
}

func readHits(tree rtree.Tree, branches BranchNames) ([]HitRecord, error) {
	var evtNb, edep, t, deviceID, pdg float64
	var position vecVars
	vars := []rtree.ReadVar{
		{Name: branches.EventID, Value: &evtNb},
		{Name: branches.HitTime, Value: &t},
		{Name: branches.HitDevice, Value: &deviceID},
		{Name: branches.HitPDG, Value: &pdg},
	}
	vars = append(vars, position.readVars(branches.HitPosition)...)
	if branches.HitEdep != "" {
		vars = append(vars, rtree.ReadVar{Name: branches.HitEdep, Value: &edep})
	}

	records := make([]HitRecord, 0, tree.Entries())
	err := readTree(tree, vars, func() {
		records = append(records, HitRecord{
			EventID:  int(evtNb),
			Edep:     edep,
			Position: position.vec(),
			Time:     t,
			DeviceID: int(deviceID),
			PDG:      int(pdg),
		})
	})
	return records, err
}
