package reco

import (
	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type RunInfoHDF5 struct {
	run_id [STRLEN]byte
	layout [STRLEN]byte
	input  [PATHLEN]byte
	seed   uint64
}

type CountersHDF5 struct {
	n_selected      int32
	n_reconstructed int32
	n_no_hits       int32
	n_timing_fail   int32
	n_non_physical  int32
	n_high_momentum int32
	n_missing_truth int32
	n_errors        int32
}

type AcceptanceSummaryHDF5 struct {
	n_events int32
}

type AcceptanceEventHDF5 struct {
	evt_number int32
	true_mom   float64
	reco_flag  int32
}

type VectorEventHDF5 struct {
	evt_number int32
	reco_p     float64
	true_p     float64
	reco_vx    float64
	reco_vy    float64
	reco_vz    float64
	true_vx    float64
	true_vy    float64
	true_vz    float64
}

const (
	STRLEN  = 40
	PATHLEN = 256
)

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func convertToHdf5Path(s string) [PATHLEN]byte {
	var byteArray [PATHLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer file_space.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if err := plist.SetDeflate(configuration.CompressionLevel); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, offset int) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array, offset)
}

// writeArrayToTable appends data to a 1D table that already holds offset rows.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, offset int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	// extend
	rowsInFile := uint(offset)
	newsize := []uint{rowsInFile + length}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}

	return dataset.WriteSubset(data, dataspace, filespace)
}
