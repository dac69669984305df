package lexicon

// fillerWords are counted as speech disfluencies.
var fillerWords = []string{
	"um", "uh", "like", "basically", "actually", "literally", "honestly", "anyway", "so", "right",
}

var positiveWords = `
good great awesome excellent amazing wonderful fantastic perfect love best
happy nice cool brilliant beautiful thanks thank helpful easy fast
better improved success successful working works fixed solved done complete
`

var negativeWords = `
bad wrong error bug issue problem fail failed broken stuck
hard difficult annoying frustrating slow ugly terrible awful hate worst
confused confusing impossible never crash crashed missing lost stupid mess
`

// phraseStopwords filter n-grams made only of glue words.
var phraseStopwords = `
the a an and or but in on at to for of with i you it is that this
`

var vocabularyStopwords = `
a an the and or but in on at to for of with by from as is was are were been
be have has had do does did will would could should may might must shall can need
i you he she it we they me him her my your his its our their this that these
what which who where when why how all each some no not only so than too very just
also now here there then if because about any up down out off over going gonna like
okay ok yeah yes um uh ah oh well right actually basically really thing things something
know think want get got make way see go one two
`

// commonWords are everyday English and software vocabulary; words outside
// this list are candidates for the rare-word metric.
var commonWords = `
about above across actually add added after again against ago agree ahead allow almost alone
along already also although always among amount another answer anyone anything anyway appear
apply approach area around article asked away back bad base based basic basically because
become been before began begin behind being believe below best better between big bit black
block body book both bottom break bring brought build building built business button call
called came cannot car care case cases cause certain chance change changed changes check child
children choose city class clean clear click close code come comes coming common company
complete completely computer consider context continue control copy correct could couple
course create created current currently data date day days deal decide default define delete
different difficult direct directly does doing done door down during each early easy either
else empty end enough entire error even event ever every everyone everything example except
expect experience explain eyes face fact family feel feeling field figure file files final
finally find fine first five fix fixed follow following food force form found four free
friend from front full function further game gave general get gets getting give given giving
goes going gone good great ground group grow guess half hand happen happened happy hard have
having head hear heard help here high himself history hold home hope hour hours house however
human idea ideas important include including information inside instead interest into issue
issues itself just keep kind knew know known large last late later learn least leave left
less let letter level life light like likely line lines list little live load local long
look looked looking looks lose lost make makes making many matter maybe mean means meant
message method middle might mind minute minutes mode money month more morning most move much
must myself name need needed needs never next nice night nothing notice number object often
okay old once only open order other others otherwise output over page paper part past path
people perhaps person pick piece place plan play please point possible power pretty print
probably problem problems process program project pull push question quick quickly quite
rather read ready real really reason remember request result return right room round rule
same save saying school second section seem seemed seems seen send sense sent server set
setting settings several shall short should show shown side simple simply since single small
some someone something sometimes soon sort sound space speak special start started state
still stop story string style such sure system table take taken talk talking task team tell
test testing tests text than thank thanks that their them themselves then there these they
thing things think this those though thought three through time times today together told
took tool tools top toward true trying turn type under understand until update upon used
useful user users using usually value values very view wait walk want wanted wants water way
ways week well went were what whatever when where whether which while white whole whose why
wide will window with within without word words work worked working works world would write
writing written wrong year years yellow young your yourself
api app apps array async backend branch browser bug bugs cache cli client command commit
component config console container database debug deploy design docker endpoint error errors
feature features fetch folder frontend git github handler image import input install json
key keys library log logs merge model models module network node package parse password
prompt query react refactor repo repository response route script search service session
sql token type types url variable version
`
