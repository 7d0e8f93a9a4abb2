package apirecordv1

import (
	"github.com/fulldump/box"
)

func BuildV1Records(v1 *box.R) *box.R {

	records := v1.Resource("/records").
		WithActions(
			box.Get(listRecords),
			box.Post(createRecord),
			box.ActionPost(reload),
			box.ActionPost(find),
			box.ActionPost(review),
			box.ActionPost(certify),
			box.Action(download),
		)

	v1.Resource("/records/{recordId}").
		WithActions(
			box.Get(getRecord),
			box.Patch(patchRecord),
			box.Delete(removeRecord),
		)

	return records
}
