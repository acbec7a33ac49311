package data

const DefaultBatchSize = 500

// BatchProcessor hands sample references to a callback in fixed size chunks.
type BatchProcessor struct {
	batchSize int
}

func NewBatchProcessor(batchSize int) *BatchProcessor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchProcessor{batchSize: batchSize}
}

func (bp *BatchProcessor) ProcessBatches(refs []SampleRef, processFn func([]SampleRef) error) error {
	total := len(refs)

	for start := 0; start < total; start += bp.batchSize {
		end := start + bp.batchSize
		if end > total {
			end = total
		}

		if err := processFn(refs[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (bp *BatchProcessor) GetBatchSize() int {
	return bp.batchSize
}
